package entity

import "fmt"

// Icon names the glyph a catalog entry is rendered with. The set is closed;
// adding a value means adding it to iconNames as well.
type Icon int

const (
	IconCalculator Icon = iota + 1
	IconFileCheck
	IconPercent
	IconBuilding
	IconShield
	IconClipboardCheck
	IconUsers
	IconTrendingUp
	IconFileText
	IconPieChart
	IconSettings
	IconCheckCircle
	IconSearch
	IconAlertCircle
	IconScale
	IconGavel
	IconBookOpen
	IconRefreshCw
	IconDollarSign
	IconTarget
	IconBarChart3
	IconLineChart
)

var iconNames = [...]string{
	IconCalculator:     "Calculator",
	IconFileCheck:      "FileCheck",
	IconPercent:        "Percent",
	IconBuilding:       "Building",
	IconShield:         "Shield",
	IconClipboardCheck: "ClipboardCheck",
	IconUsers:          "Users",
	IconTrendingUp:     "TrendingUp",
	IconFileText:       "FileText",
	IconPieChart:       "PieChart",
	IconSettings:       "Settings",
	IconCheckCircle:    "CheckCircle",
	IconSearch:         "Search",
	IconAlertCircle:    "AlertCircle",
	IconScale:          "Scale",
	IconGavel:          "Gavel",
	IconBookOpen:       "BookOpen",
	IconRefreshCw:      "RefreshCw",
	IconDollarSign:     "DollarSign",
	IconTarget:         "Target",
	IconBarChart3:      "BarChart3",
	IconLineChart:      "LineChart",
}

// AllIcons lists every defined icon in declaration order.
func AllIcons() []Icon {
	out := make([]Icon, 0, len(iconNames)-1)
	for i := IconCalculator; int(i) < len(iconNames); i++ {
		out = append(out, i)
	}
	return out
}

func (i Icon) Valid() bool {
	return i > 0 && int(i) < len(iconNames)
}

func (i Icon) String() string {
	if !i.Valid() {
		return fmt.Sprintf("Icon(%d)", int(i))
	}
	return iconNames[i]
}

func ParseIcon(name string) (Icon, error) {
	for _, icon := range AllIcons() {
		if iconNames[icon] == name {
			return icon, nil
		}
	}
	return 0, fmt.Errorf("unknown icon %q", name)
}

func (i Icon) MarshalText() ([]byte, error) {
	if !i.Valid() {
		return nil, fmt.Errorf("invalid icon %d", int(i))
	}
	return []byte(iconNames[i]), nil
}

func (i *Icon) UnmarshalText(text []byte) error {
	parsed, err := ParseIcon(string(text))
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}
