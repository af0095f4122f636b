package usecase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	adapterrepo "gmrportal/internal/adapter/repository"
	"gmrportal/internal/domain/entity"
	"gmrportal/internal/domain/notify"
	"gmrportal/internal/domain/service"
	"gmrportal/internal/infrastructure/firebase"
	"gmrportal/pkg/errors"
)

type memRequests struct {
	mu      sync.Mutex
	rows    map[string]*entity.ServiceRequest
	seq     int
	failUpd error
}

func newMemRequests() *memRequests {
	return &memRequests{rows: map[string]*entity.ServiceRequest{}}
}

func (m *memRequests) put(r *entity.ServiceRequest) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Unix(int64(m.seq), 0)
	}
	m.rows[r.ID] = r.Clone()
}

func (m *memRequests) CreateIfNoActive(_ context.Context, req *entity.ServiceRequest) (*entity.ServiceRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.UserID == req.UserID && r.ServiceID == req.ServiceID && r.Status.Active() {
			return r.Clone(), nil
		}
	}
	m.seq++
	if req.ID == "" {
		req.ID = fmt.Sprintf("req-%d", m.seq)
	}
	req.CreatedAt = time.Unix(int64(m.seq), 0)
	req.UpdatedAt = req.CreatedAt
	m.rows[req.ID] = req.Clone()
	return nil, nil
}

func (m *memRequests) GetByID(_ context.Context, id string) (*entity.ServiceRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rows[id]
	if !ok {
		return nil, errors.NotFound("Service request", nil)
	}
	return r.Clone(), nil
}

func (m *memRequests) Update(_ context.Context, req *entity.ServiceRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failUpd != nil {
		return m.failUpd
	}
	m.rows[req.ID] = req.Clone()
	return nil
}

func (m *memRequests) filter(keep func(*entity.ServiceRequest) bool) []*entity.ServiceRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*entity.ServiceRequest{}
	for _, r := range m.rows {
		if keep(r) {
			out = append(out, r.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (m *memRequests) ListByUser(_ context.Context, userID string) ([]*entity.ServiceRequest, error) {
	return m.filter(func(r *entity.ServiceRequest) bool { return r.UserID == userID }), nil
}

func (m *memRequests) ListByUserAndService(_ context.Context, userID, serviceID string) ([]*entity.ServiceRequest, error) {
	return m.filter(func(r *entity.ServiceRequest) bool { return r.UserID == userID && r.ServiceID == serviceID }), nil
}

func (m *memRequests) ListRecentByUser(ctx context.Context, userID string, limit int) ([]*entity.ServiceRequest, error) {
	out, _ := m.ListByUser(ctx, userID)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memRequests) ListAll(_ context.Context, statuses []entity.RequestStatus) ([]*entity.ServiceRequest, error) {
	return m.filter(func(r *entity.ServiceRequest) bool {
		if len(statuses) == 0 {
			return true
		}
		for _, s := range statuses {
			if r.Status == s {
				return true
			}
		}
		return false
	}), nil
}

type memProfiles struct {
	rows    map[string]*entity.Profile
	failAdd error
}

func newMemProfiles(profiles ...*entity.Profile) *memProfiles {
	m := &memProfiles{rows: map[string]*entity.Profile{}}
	for _, p := range profiles {
		m.rows[p.UserID] = p
	}
	return m
}

func (m *memProfiles) Create(_ context.Context, p *entity.Profile) error {
	if m.failAdd != nil {
		return m.failAdd
	}
	m.rows[p.UserID] = p
	return nil
}

func (m *memProfiles) GetByUserID(_ context.Context, uid string) (*entity.Profile, error) {
	p, ok := m.rows[uid]
	if !ok {
		return nil, errors.NotFound("Profile", nil)
	}
	return p, nil
}

func (m *memProfiles) GetByUserIDs(_ context.Context, ids []string) (map[string]*entity.Profile, error) {
	out := map[string]*entity.Profile{}
	for _, id := range ids {
		if p, ok := m.rows[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

type memClientDocs struct {
	rows       map[string]*entity.ClientDocument
	failCreate error
}

func newMemClientDocs() *memClientDocs {
	return &memClientDocs{rows: map[string]*entity.ClientDocument{}}
}

func (m *memClientDocs) Create(_ context.Context, d *entity.ClientDocument) error {
	if m.failCreate != nil {
		return m.failCreate
	}
	cp := *d
	m.rows[d.ID] = &cp
	return nil
}

func (m *memClientDocs) GetByID(_ context.Context, id string) (*entity.ClientDocument, error) {
	d, ok := m.rows[id]
	if !ok {
		return nil, errors.NotFound("Document", nil)
	}
	cp := *d
	return &cp, nil
}

func (m *memClientDocs) Update(_ context.Context, d *entity.ClientDocument) error {
	cp := *d
	m.rows[d.ID] = &cp
	return nil
}

func (m *memClientDocs) Delete(_ context.Context, id string) error {
	delete(m.rows, id)
	return nil
}

func (m *memClientDocs) ListByRequest(_ context.Context, requestID, userID string) ([]*entity.ClientDocument, error) {
	out := []*entity.ClientDocument{}
	for _, d := range m.rows {
		if d.ServiceRequestID == requestID && (userID == "" || d.UserID == userID) {
			cp := *d
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type memServiceDocs struct {
	rows map[string]*entity.ServiceDocument
}

func (m *memServiceDocs) Upsert(_ context.Context, d *entity.ServiceDocument) error {
	cp := *d
	m.rows[d.ServiceRequestID] = &cp
	return nil
}

func (m *memServiceDocs) GetByRequest(_ context.Context, requestID string) (*entity.ServiceDocument, error) {
	d, ok := m.rows[requestID]
	if !ok {
		return nil, errors.NotFound("Service document", nil)
	}
	return d, nil
}

type memPayments struct {
	rows map[string]*entity.Payment
}

func newMemPayments() *memPayments {
	return &memPayments{rows: map[string]*entity.Payment{}}
}

func (m *memPayments) Create(_ context.Context, p *entity.Payment) error {
	cp := *p
	m.rows[p.ID] = &cp
	return nil
}

func (m *memPayments) GetByID(_ context.Context, id string) (*entity.Payment, error) {
	p, ok := m.rows[id]
	if !ok {
		return nil, errors.NotFound("Payment", nil)
	}
	cp := *p
	return &cp, nil
}

func (m *memPayments) Update(_ context.Context, p *entity.Payment) error {
	cp := *p
	m.rows[p.ID] = &cp
	return nil
}

func (m *memPayments) ListByUser(_ context.Context, uid string) ([]*entity.Payment, error) {
	out := []*entity.Payment{}
	for _, p := range m.rows {
		if p.UserID == uid {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

type memConversations struct {
	mu    sync.Mutex
	convs map[string]*entity.Conversation
	msgs  map[string][]*entity.ChatMessage
}

func newMemConversations() *memConversations {
	return &memConversations{convs: map[string]*entity.Conversation{}, msgs: map[string][]*entity.ChatMessage{}}
}

func (m *memConversations) Create(_ context.Context, c *entity.Conversation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *c
	m.convs[c.ID] = &cp
	return nil
}

func (m *memConversations) GetByID(_ context.Context, id string) (*entity.Conversation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.convs[id]
	if !ok {
		return nil, errors.NotFound("Conversation", nil)
	}
	cp := *c
	return &cp, nil
}

func (m *memConversations) ListByUser(_ context.Context, uid string) ([]*entity.Conversation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*entity.Conversation{}
	for _, c := range m.convs {
		if c.UserID == uid {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memConversations) Touch(context.Context, string) error { return nil }

func (m *memConversations) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.convs, id)
	delete(m.msgs, id)
	return nil
}

func (m *memConversations) AddMessage(_ context.Context, msg *entity.ChatMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *msg
	m.msgs[msg.ConversationID] = append(m.msgs[msg.ConversationID], &cp)
	return nil
}

func (m *memConversations) ListMessages(_ context.Context, id string) ([]*entity.ChatMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*entity.ChatMessage(nil), m.msgs[id]...), nil
}

type memContacts struct {
	rows []*entity.ContactInquiry
}

func (m *memContacts) Create(_ context.Context, c *entity.ContactInquiry) error {
	m.rows = append(m.rows, c)
	return nil
}

type memObject struct {
	data        []byte
	contentType string
}

type memStorage struct {
	objects map[string]memObject
}

func newMemStorage() *memStorage {
	return &memStorage{objects: map[string]memObject{}}
}

func (s *memStorage) Upload(_ context.Context, prefix, p string, r io.Reader, contentType string, overwrite bool) (*service.ObjectInfo, error) {
	key := prefix + "/" + p
	if _, exists := s.objects[key]; exists && !overwrite {
		return nil, service.ErrObjectExists
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	s.objects[key] = memObject{data: data, contentType: contentType}
	return &service.ObjectInfo{Path: p, ContentType: contentType, Size: int64(len(data))}, nil
}

func (s *memStorage) Open(_ context.Context, prefix, p string) (io.ReadCloser, *service.ObjectInfo, error) {
	obj, ok := s.objects[prefix+"/"+p]
	if !ok {
		return nil, nil, service.ErrObjectNotFound
	}
	return io.NopCloser(bytes.NewReader(obj.data)), &service.ObjectInfo{Path: p, ContentType: obj.contentType, Size: int64(len(obj.data))}, nil
}

func (s *memStorage) Delete(_ context.Context, prefix, p string) error {
	delete(s.objects, prefix+"/"+p)
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []notify.Event
}

func (p *recordingPublisher) Publish(ev notify.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
}

func (p *recordingPublisher) all() []notify.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]notify.Event(nil), p.events...)
}

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) CreateOrder(ctx context.Context, req service.OrderRequest) (*service.Order, error) {
	args := m.Called(ctx, req)
	if o := args.Get(0); o != nil {
		return o.(*service.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockGateway) VerifySignature(orderID, paymentID, signature string) bool {
	return m.Called(orderID, paymentID, signature).Bool(0)
}

func (m *mockGateway) KeyID() string {
	return "rzp_test_key"
}

type mockIdentity struct {
	mock.Mock
}

func (m *mockIdentity) CreateUser(ctx context.Context, email, password, name string) (string, error) {
	args := m.Called(ctx, email, password, name)
	return args.String(0), args.Error(1)
}

func (m *mockIdentity) DeleteUser(ctx context.Context, uid string) error {
	return m.Called(ctx, uid).Error(0)
}

func (m *mockIdentity) VerifyToken(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

func (m *mockIdentity) SignInWithEmailPassword(ctx context.Context, email, password string) (*firebase.TokenPair, error) {
	args := m.Called(ctx, email, password)
	if t := args.Get(0); t != nil {
		return t.(*firebase.TokenPair), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockIdentity) RefreshIDToken(ctx context.Context, refreshToken string) (*firebase.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	if t := args.Get(0); t != nil {
		return t.(*firebase.TokenPair), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockIdentity) TestConnection(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type fixture struct {
	requests   *memRequests
	profiles   *memProfiles
	publisher  *recordingPublisher
	catalog    *CatalogUseCase
	requestsUC *ServiceRequestUseCase
}

func newFixture() *fixture {
	f := &fixture{
		requests: newMemRequests(),
		profiles: newMemProfiles(
			&entity.Profile{UserID: "client-1", Name: "Asha", Role: entity.RoleClient},
			&entity.Profile{UserID: "client-2", Name: "Ravi", Role: entity.RoleClient},
			&entity.Profile{UserID: "ca-1", Name: "CA Mehta", Role: entity.RoleCA},
		),
		publisher: &recordingPublisher{},
	}
	f.catalog = NewCatalogUseCase(adapterrepo.NewStaticCatalogRepository(), 18, "INR")
	f.requestsUC = NewServiceRequestUseCase(f.requests, f.profiles, f.catalog, f.publisher)
	return f
}
