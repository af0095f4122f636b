package repository

import (
	"gmrportal/internal/domain/entity"
	"gmrportal/internal/domain/repository"
)

type staticCatalogRepository struct {
	services      []entity.CatalogService
	practiceAreas []entity.PracticeArea
}

// NewStaticCatalogRepository serves the built-in price list and practice areas.
func NewStaticCatalogRepository() repository.CatalogRepository {
	return &staticCatalogRepository{
		services:      catalogServices,
		practiceAreas: practiceAreas,
	}
}

func (r *staticCatalogRepository) ListServices() []entity.CatalogService {
	out := make([]entity.CatalogService, len(r.services))
	copy(out, r.services)
	return out
}

func (r *staticCatalogRepository) GetService(id string) (entity.CatalogService, bool) {
	for _, s := range r.services {
		if s.ID == id {
			return s, true
		}
	}
	return entity.CatalogService{}, false
}

func (r *staticCatalogRepository) ListPracticeAreas() []entity.PracticeArea {
	out := make([]entity.PracticeArea, len(r.practiceAreas))
	copy(out, r.practiceAreas)
	return out
}

func (r *staticCatalogRepository) GetPracticeArea(id string) (entity.PracticeArea, bool) {
	for _, a := range r.practiceAreas {
		if a.ID == id {
			return a, true
		}
	}
	return entity.PracticeArea{}, false
}

var catalogServices = []entity.CatalogService{
	{
		ID:            "income-tax-filing",
		Icon:          entity.IconCalculator,
		Title:         "Income Tax Filing",
		ShortDesc:     "Complete ITR filing for individuals and businesses",
		Description:   "Expert assistance in filing your Income Tax Returns with maximum tax savings. We handle all ITR forms including ITR-1 to ITR-7.",
		Price:         2999,
		OriginalPrice: 4999,
		Duration:      "3-5 business days",
		Category:      "Tax Services",
		Features: []string{
			"Complete ITR preparation & filing",
			"Tax-saving recommendations",
			"Document verification",
			"E-verification assistance",
			"Form 16 & 26AS reconciliation",
			"Post-filing support",
		},
		Popular: true,
	},
	{
		ID:            "gst-registration",
		Icon:          entity.IconFileCheck,
		Title:         "GST Registration",
		ShortDesc:     "Quick and hassle-free GST registration",
		Description:   "Get your GST registration done quickly with our expert guidance. We handle the entire process from application to certificate.",
		Price:         1999,
		OriginalPrice: 2999,
		Duration:      "5-7 business days",
		Category:      "GST Services",
		Features: []string{
			"Complete application preparation",
			"Document collection & verification",
			"ARN tracking",
			"GST certificate delivery",
			"Post-registration guidance",
			"Login credentials setup",
		},
	},
	{
		ID:          "gst-return-filing",
		Icon:        entity.IconPercent,
		Title:       "GST Return Filing",
		ShortDesc:   "Monthly, quarterly, and annual GST returns",
		Description: "Accurate and timely GST return filing to ensure compliance. We handle GSTR-1, GSTR-3B, and annual returns.",
		Price:       999,
		Duration:    "Same day processing",
		Category:    "GST Services",
		Features: []string{
			"GSTR-1 filing",
			"GSTR-3B filing",
			"Input tax credit reconciliation",
			"Invoice matching",
			"Late fee computation",
			"Compliance calendar",
		},
	},
	{
		ID:            "company-incorporation",
		Icon:          entity.IconBuilding,
		Title:         "Company Incorporation",
		ShortDesc:     "Private Limited, LLP, OPC registration",
		Description:   "Complete company incorporation services including name approval, MOA/AOA drafting, and registration with MCA.",
		Price:         9999,
		OriginalPrice: 14999,
		Duration:      "10-15 business days",
		Category:      "Company Law",
		Features: []string{
			"Name availability check",
			"DSC & DIN procurement",
			"MOA & AOA drafting",
			"MCA filing & registration",
			"PAN & TAN application",
			"Incorporation certificate",
		},
		Popular: true,
	},
	{
		ID:          "audit-assurance",
		Icon:        entity.IconShield,
		Title:       "Audit & Assurance",
		ShortDesc:   "Statutory, internal, and tax audits",
		Description: "Comprehensive audit services to ensure financial accuracy and regulatory compliance for your business.",
		Price:       15000,
		Duration:    "2-4 weeks",
		Category:    "Audit Services",
		Features: []string{
			"Statutory audit",
			"Internal audit",
			"Tax audit",
			"Due diligence",
			"Risk assessment",
			"Management letter",
		},
	},
	{
		ID:            "compliance-services",
		Icon:          entity.IconClipboardCheck,
		Title:         "Annual Compliance",
		ShortDesc:     "ROC filings, annual returns, board meetings",
		Description:   "Stay compliant with all annual regulatory requirements including ROC filings, AGM, and board meeting compliance.",
		Price:         7999,
		OriginalPrice: 9999,
		Duration:      "Ongoing support",
		Category:      "Compliance",
		Features: []string{
			"Annual return filing",
			"Director KYC",
			"Board meeting minutes",
			"AGM compliance",
			"Statutory registers",
			"Event-based filings",
		},
	},
	{
		ID:          "tds-compliance",
		Icon:        entity.IconPercent,
		Title:       "TDS Compliance",
		ShortDesc:   "TDS deduction, payment, and return filing",
		Description: "Complete TDS management including deduction, payment, quarterly returns, and TDS certificate issuance.",
		Price:       2499,
		Duration:    "Quarterly filing",
		Category:    "Tax Services",
		Features: []string{
			"TDS computation",
			"Challan preparation",
			"Quarterly TDS returns",
			"Form 16/16A generation",
			"TDS reconciliation",
			"Lower deduction certificate",
		},
	},
	{
		ID:          "payroll-management",
		Icon:        entity.IconUsers,
		Title:       "Payroll Management",
		ShortDesc:   "Complete payroll processing and compliance",
		Description: "End-to-end payroll processing including salary computation, PF/ESI compliance, and statutory filings.",
		Price:       4999,
		Duration:    "Monthly service",
		Category:    "HR & Payroll",
		Features: []string{
			"Salary processing",
			"PF/ESI compliance",
			"Professional tax",
			"Payslip generation",
			"Full & final settlement",
			"Form 16 preparation",
		},
	},
	{
		ID:          "project-finance",
		Icon:        entity.IconTrendingUp,
		Title:       "Project Finance",
		ShortDesc:   "Business loans, project reports, funding",
		Description: "Expert assistance in project financing including detailed project reports, loan documentation, and bank liaison.",
		Price:       19999,
		Duration:    "2-4 weeks",
		Category:    "Advisory",
		Features: []string{
			"Project report preparation",
			"Financial projections",
			"Loan documentation",
			"Bank liaison",
			"Subsidy applications",
			"Credit appraisal support",
		},
	},
}

var practiceAreas = []entity.PracticeArea{
	{
		ID:    "accounting",
		Icon:  entity.IconCalculator,
		Title: "Accounting & Bookkeeping",
		Desc:  "Precision bookkeeping, financial statement preparation, and system design compliant with IAS, USGAAP, or IND AS to ensure your finances are always in order.",
		Features: []entity.PracticeFeature{
			{Icon: entity.IconFileText, Title: "Automated Bookkeeping", Text: "AI-powered data entry and categorization for error-free books."},
			{Icon: entity.IconPieChart, Title: "Financial Reporting", Text: "Generate insightful monthly P&L, Balance Sheets, and Cash Flow statements."},
			{Icon: entity.IconSettings, Title: "System Implementation", Text: "We help you set up and manage accounting software like Tally, QuickBooks, etc."},
			{Icon: entity.IconCheckCircle, Title: "Compliance Management", Text: "Ensuring your books are compliant with all relevant accounting standards."},
		},
		Timeline: []entity.TimelineStep{
			{Title: "Onboarding & Data Sync", Text: "Securely connect your bank accounts and upload initial documents."},
			{Title: "Monthly Processing", Text: "Our AI and human experts categorize transactions and reconcile accounts monthly."},
			{Title: "Review & Reporting", Text: "Receive clear, concise financial reports and insights at month-end."},
			{Title: "Year-End Finalization", Text: "We prepare and finalize your books for annual auditing and tax filing."},
		},
		FAQs: []entity.FAQ{
			{Q: "What software do you work with?", A: "We are proficient in a wide range of accounting software including Tally, QuickBooks, Zoho Books, and more. We can adapt to your existing system or recommend one."},
			{Q: "How do I share my documents?", A: "Once you request the service, you can securely upload all documents like invoices and bank statements through your private client dashboard."},
		},
	},
	{
		ID:    "auditing",
		Icon:  entity.IconFileCheck,
		Title: "Auditing & Assurance",
		Desc:  "Comprehensive statutory, internal, and tax audits to ensure financial accuracy, identify risks, and improve corporate governance.",
		Features: []entity.PracticeFeature{
			{Icon: entity.IconShield, Title: "Statutory Audits", Text: "Ensuring your financial statements comply with statutory requirements."},
			{Icon: entity.IconSearch, Title: "Internal Audits", Text: "Comprehensive review of internal controls and operational efficiency."},
			{Icon: entity.IconAlertCircle, Title: "Risk Assessment", Text: "Identify potential financial and operational risks in your business."},
			{Icon: entity.IconTrendingUp, Title: "Performance Review", Text: "Detailed analysis of business performance and improvement areas."},
		},
		Timeline: []entity.TimelineStep{
			{Title: "Planning & Scoping", Text: "Understanding your business and defining audit objectives."},
			{Title: "Fieldwork & Testing", Text: "Detailed examination of financial records and internal controls."},
			{Title: "Analysis & Reporting", Text: "Comprehensive audit report with findings and recommendations."},
			{Title: "Follow-up & Support", Text: "Ongoing support to implement audit recommendations."},
		},
		FAQs: []entity.FAQ{
			{Q: "How long does an audit take?", A: "The duration depends on the size and complexity of your organization. Typically, a statutory audit takes 2-4 weeks."},
			{Q: "What documents do I need?", A: "You'll need financial statements, ledgers, invoices, bank statements, and supporting documentation."},
		},
	},
	{
		ID:    "tax",
		Icon:  entity.IconPercent,
		Title: "Tax Advisory & Compliance",
		Desc:  "Strategic advice on direct (Income Tax) and indirect (GST) taxation to optimize your financial position and ensure full compliance.",
		Features: []entity.PracticeFeature{
			{Icon: entity.IconFileText, Title: "Tax Planning", Text: "Strategic planning to optimize your tax position legally."},
			{Icon: entity.IconCalculator, Title: "Tax Filing", Text: "Accurate and timely filing of all tax returns and forms."},
			{Icon: entity.IconScale, Title: "GST Compliance", Text: "Complete GST registration, filing, and compliance management."},
			{Icon: entity.IconUsers, Title: "Tax Advisory", Text: "Expert guidance on complex tax matters and regulatory changes."},
		},
		Timeline: []entity.TimelineStep{
			{Title: "Tax Assessment", Text: "Review your current tax position and identify opportunities."},
			{Title: "Strategy Development", Text: "Create a comprehensive tax strategy aligned with your goals."},
			{Title: "Implementation", Text: "Execute tax planning strategies and file all required returns."},
			{Title: "Ongoing Support", Text: "Continuous monitoring and updates on tax law changes."},
		},
		FAQs: []entity.FAQ{
			{Q: "Can you help with GST registration?", A: "Yes, we provide complete GST registration, filing, and compliance services."},
			{Q: "Do you handle TDS returns?", A: "Yes, we manage all aspects of TDS including deduction, payment, and return filing."},
		},
	},
	{
		ID:    "company-law",
		Icon:  entity.IconGavel,
		Title: "Company Law & Secretarial",
		Desc:  "Expert assistance with company incorporation (Pvt Ltd, LLP), ROC filings, and maintenance of statutory records.",
		Features: []entity.PracticeFeature{
			{Icon: entity.IconBuilding, Title: "Company Incorporation", Text: "End-to-end support for Pvt Ltd, LLP, and other entity formations."},
			{Icon: entity.IconFileText, Title: "ROC Filings", Text: "Timely and accurate filing of all ROC compliance requirements."},
			{Icon: entity.IconBookOpen, Title: "Statutory Records", Text: "Maintenance of registers, minutes, and statutory books."},
			{Icon: entity.IconRefreshCw, Title: "Annual Compliance", Text: "Complete annual return filings and board meeting compliance."},
		},
		Timeline: []entity.TimelineStep{
			{Title: "Initial Consultation", Text: "Understand your business structure and compliance needs."},
			{Title: "Documentation", Text: "Prepare and file all necessary documents with authorities."},
			{Title: "Registration", Text: "Complete incorporation or filing process with ROC."},
			{Title: "Ongoing Compliance", Text: "Regular compliance calendar and timely filings."},
		},
		FAQs: []entity.FAQ{
			{Q: "How long does company incorporation take?", A: "Typically 7-15 days depending on the type of entity and document readiness."},
			{Q: "Do you handle LLP conversions?", A: "Yes, we assist with conversions from partnership to LLP and vice versa."},
		},
	},
	{
		ID:    "payroll",
		Icon:  entity.IconUsers,
		Title: "Payroll Management",
		Desc:  "End-to-end payroll processing, including salary structuring, TDS compliance, and statutory filings (PF, ESI).",
		Features: []entity.PracticeFeature{
			{Icon: entity.IconDollarSign, Title: "Salary Processing", Text: "Accurate monthly salary computation and disbursement."},
			{Icon: entity.IconFileCheck, Title: "TDS Compliance", Text: "Complete TDS deduction, payment, and return filing."},
			{Icon: entity.IconShield, Title: "PF & ESI", Text: "Registration, monthly contributions, and compliance management."},
			{Icon: entity.IconFileText, Title: "Pay Slips & Reports", Text: "Detailed pay slips and comprehensive payroll reports."},
		},
		Timeline: []entity.TimelineStep{
			{Title: "Setup & Configuration", Text: "Configure payroll structure, components, and compliance requirements."},
			{Title: "Monthly Processing", Text: "Process salaries, deductions, and statutory contributions."},
			{Title: "Compliance Filings", Text: "Timely filing of PF, ESI, and TDS returns."},
			{Title: "Year-End Processing", Text: "Annual salary statements and Form 16 generation."},
		},
		FAQs: []entity.FAQ{
			{Q: "Do you handle statutory registrations?", A: "Yes, we help with PF, ESI, and Professional Tax registrations."},
			{Q: "Can you manage payroll for contract staff?", A: "Yes, we handle payroll for permanent, contract, and temporary staff."},
		},
	},
	{
		ID:    "finance-advisory",
		Icon:  entity.IconTrendingUp,
		Title: "Finance & Project Advisory",
		Desc:  "Reliable consulting for project financing, business valuations, due diligence, and financial modeling for strategic decisions.",
		Features: []entity.PracticeFeature{
			{Icon: entity.IconTarget, Title: "Project Financing", Text: "Assistance with project reports and financing from banks/NBFCs."},
			{Icon: entity.IconBarChart3, Title: "Business Valuation", Text: "Comprehensive valuation for M&A, investment, or compliance purposes."},
			{Icon: entity.IconSearch, Title: "Due Diligence", Text: "Financial and legal due diligence for acquisitions and investments."},
			{Icon: entity.IconLineChart, Title: "Financial Modeling", Text: "Detailed financial projections and scenario analysis."},
		},
		Timeline: []entity.TimelineStep{
			{Title: "Requirement Analysis", Text: "Understand your project or transaction requirements."},
			{Title: "Data Collection", Text: "Gather financial and operational data for analysis."},
			{Title: "Analysis & Modeling", Text: "Perform detailed analysis and prepare reports."},
			{Title: "Presentation & Support", Text: "Present findings and support implementation."},
		},
		FAQs: []entity.FAQ{
			{Q: "What valuation methods do you use?", A: "We use DCF, comparable company analysis, and asset-based methods as appropriate."},
			{Q: "Do you help with loan applications?", A: "Yes, we prepare project reports and assist with bank/NBFC financing."},
		},
	},
}
