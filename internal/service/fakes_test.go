package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"parish-portal-be/internal/entity"
	"parish-portal-be/internal/pkg/mailer"
	"parish-portal-be/internal/repository/contract"
	"parish-portal-be/internal/repository/specification"
	"parish-portal-be/internal/repository/unitofwork"
	"parish-portal-be/pkg/events"
	"parish-portal-be/pkg/payment"
	"parish-portal-be/pkg/workflow"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// memStore backs every fake repository. Reads hand out copies so services
// cannot mutate stored rows behind the repository's back.
type memStore struct {
	mu            sync.Mutex
	users         map[uuid.UUID]*entity.User
	certificates  map[uuid.UUID]*entity.CertificateRequest
	masses        map[uuid.UUID]*entity.MassBooking
	intents       map[string]*entity.PaymentIntent
	announcements map[uuid.UUID]*entity.Announcement
	calendar      map[uuid.UUID]*entity.CalendarEvent
}

func newMemStore() *memStore {
	return &memStore{
		users:         map[uuid.UUID]*entity.User{},
		certificates:  map[uuid.UUID]*entity.CertificateRequest{},
		masses:        map[uuid.UUID]*entity.MassBooking{},
		intents:       map[string]*entity.PaymentIntent{},
		announcements: map[uuid.UUID]*entity.Announcement{},
		calendar:      map[uuid.UUID]*entity.CalendarEvent{},
	}
}

func (s *memStore) requester(id uuid.UUID) *entity.Requester {
	if u, ok := s.users[id]; ok {
		return &entity.Requester{Id: u.Id, Name: u.Name, Email: u.Email}
	}
	return nil
}

// certificate returns a copy of the stored row.
func (s *memStore) certificate(t *testing.T, id string) entity.CertificateRequest {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.certificates[uuid.MustParse(id)]
	require.True(t, ok, "certificate %s not stored", id)
	return *c
}

type fakeFactory struct{ store *memStore }

func (f fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUow{store: f.store}
}

type fakeUow struct{ store *memStore }

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error                   { return nil }
func (u *fakeUow) Rollback() error                 { return nil }

func (u *fakeUow) UserRepository() contract.UserRepository {
	return &fakeUserRepo{u.store}
}
func (u *fakeUow) CertificateRepository() contract.CertificateRepository {
	return &fakeCertificateRepo{u.store}
}
func (u *fakeUow) MassBookingRepository() contract.MassBookingRepository {
	return &fakeMassRepo{u.store}
}
func (u *fakeUow) PaymentIntentRepository() contract.PaymentIntentRepository {
	return &fakeIntentRepo{u.store}
}
func (u *fakeUow) AnnouncementRepository() contract.AnnouncementRepository {
	return &fakeAnnouncementRepo{u.store}
}
func (u *fakeUow) CalendarEventRepository() contract.CalendarEventRepository {
	return &fakeCalendarRepo{u.store}
}

// rowView is the subset of columns the fake specification matcher understands.
type rowView struct {
	id        uuid.UUID
	stringId  string
	userId    uuid.UUID
	email     string
	kind      string
	createdAt time.Time
}

func matches(row rowView, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if row.id != s.ID {
				return false
			}
		case specification.ByStringID:
			if row.stringId != s.ID {
				return false
			}
		case specification.ByEmail:
			if row.email != strings.ToLower(strings.TrimSpace(s.Email)) {
				return false
			}
		case specification.UserOwnedBy:
			if row.userId != s.UserID {
				return false
			}
		case specification.CreatedAfter:
			if row.createdAt.Before(s.Since) {
				return false
			}
		}
	}
	return true
}

func wantsRequester(specs []specification.Specification) bool {
	for _, spec := range specs {
		if _, ok := spec.(specification.WithRequester); ok {
			return true
		}
	}
	return false
}

func ordering(specs []specification.Specification) (specification.OrderBy, bool) {
	for _, spec := range specs {
		if o, ok := spec.(specification.OrderBy); ok {
			return o, true
		}
	}
	return specification.OrderBy{}, false
}

func sortByCreated[T any](rows []T, at func(T) time.Time, specs []specification.Specification) {
	o, ok := ordering(specs)
	if !ok {
		return
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if o.Desc {
			return at(rows[i]).After(at(rows[j]))
		}
		return at(rows[i]).Before(at(rows[j]))
	})
}

type fakeUserRepo struct{ s *memStore }

func userView(u *entity.User) rowView {
	return rowView{id: u.Id, email: u.Email, createdAt: u.CreatedAt}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *user
	r.s.users[user.Id] = &c
	return nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	return r.Create(ctx, user)
}

func (r *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if matches(userView(u), specs) {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.User
	for _, u := range r.s.users {
		if matches(userView(u), specs) {
			c := *u
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, err := r.FindAll(ctx, specs...)
	return int64(len(all)), err
}

func (r *fakeUserRepo) mutate(id uuid.UUID, fn func(u *entity.User)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return errors.New("user missing")
	}
	fn(u)
	return nil
}

func (r *fakeUserRepo) SetVerifyOtp(ctx context.Context, id uuid.UUID, otp string, expiresAt time.Time) error {
	return r.mutate(id, func(u *entity.User) { u.VerifyOtp, u.VerifyOtpExpireAt = otp, &expiresAt })
}

func (r *fakeUserRepo) MarkAccountVerified(ctx context.Context, id uuid.UUID) error {
	return r.mutate(id, func(u *entity.User) {
		u.IsAccountVerified, u.VerifyOtp, u.VerifyOtpExpireAt = true, "", nil
	})
}

func (r *fakeUserRepo) SetResetOtp(ctx context.Context, id uuid.UUID, otp string, expiresAt time.Time) error {
	return r.mutate(id, func(u *entity.User) { u.ResetOtp, u.ResetOtpExpireAt = otp, &expiresAt })
}

func (r *fakeUserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	return r.mutate(id, func(u *entity.User) {
		u.PasswordHash, u.ResetOtp, u.ResetOtpExpireAt = hash, "", nil
	})
}

func (r *fakeUserRepo) UpdateRole(ctx context.Context, id uuid.UUID, role entity.UserRole) error {
	return r.mutate(id, func(u *entity.User) { u.Role = role })
}

type fakeCertificateRepo struct{ s *memStore }

func certificateView(c *entity.CertificateRequest) rowView {
	return rowView{id: c.Id, userId: c.UserId, createdAt: c.CreatedAt}
}

func (r *fakeCertificateRepo) Create(ctx context.Context, req *entity.CertificateRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := time.Now()
	req.CreatedAt, req.UpdatedAt = now, now
	c := *req
	r.s.certificates[req.Id] = &c
	return nil
}

func (r *fakeCertificateRepo) copyOf(c *entity.CertificateRequest, specs []specification.Specification) *entity.CertificateRequest {
	out := *c
	if wantsRequester(specs) {
		out.Requester = r.s.requester(c.UserId)
	}
	return &out
}

func (r *fakeCertificateRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CertificateRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.certificates {
		if matches(certificateView(c), specs) {
			return r.copyOf(c, specs), nil
		}
	}
	return nil, nil
}

func (r *fakeCertificateRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CertificateRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.CertificateRequest
	for _, c := range r.s.certificates {
		if matches(certificateView(c), specs) {
			out = append(out, r.copyOf(c, specs))
		}
	}
	sortByCreated(out, func(c *entity.CertificateRequest) time.Time { return c.CreatedAt }, specs)
	return out, nil
}

func (r *fakeCertificateRepo) Decide(ctx context.Context, id uuid.UUID, next workflow.State, remark string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.certificates[id]
	if !ok || c.Status != workflow.StatusPending {
		return false, nil
	}
	c.Status, c.PaymentStatus, c.Remark = next.Status, next.PaymentStatus, remark
	return true, nil
}

func (r *fakeCertificateRepo) MarkPaid(ctx context.Context, id uuid.UUID, paymentId string, paidAt time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.certificates[id]
	if !ok || c.Status != workflow.StatusApproved || c.PaymentStatus != workflow.PaymentPending {
		return false, nil
	}
	c.PaymentStatus, c.PaymentId, c.PaidAt = workflow.PaymentPaid, &paymentId, &paidAt
	return true, nil
}

func (r *fakeCertificateRepo) SetDeliverable(ctx context.Context, id uuid.UUID, path string, deliveredAt time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.certificates[id]
	if !ok || c.Status != workflow.StatusApproved || c.PaymentStatus != workflow.PaymentPaid {
		return false, nil
	}
	c.CertificatePdf, c.DeliveredAt = path, &deliveredAt
	return true, nil
}

type fakeMassRepo struct{ s *memStore }

func massView(m *entity.MassBooking) rowView {
	return rowView{id: m.Id, userId: m.UserId, createdAt: m.CreatedAt}
}

func (r *fakeMassRepo) Create(ctx context.Context, booking *entity.MassBooking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := time.Now()
	booking.CreatedAt, booking.UpdatedAt = now, now
	c := *booking
	r.s.masses[booking.Id] = &c
	return nil
}

func (r *fakeMassRepo) copyOf(m *entity.MassBooking, specs []specification.Specification) *entity.MassBooking {
	out := *m
	if wantsRequester(specs) {
		out.Requester = r.s.requester(m.UserId)
	}
	return &out
}

func (r *fakeMassRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.MassBooking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, m := range r.s.masses {
		if matches(massView(m), specs) {
			return r.copyOf(m, specs), nil
		}
	}
	return nil, nil
}

func (r *fakeMassRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.MassBooking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.MassBooking
	for _, m := range r.s.masses {
		if matches(massView(m), specs) {
			out = append(out, r.copyOf(m, specs))
		}
	}
	sortByCreated(out, func(m *entity.MassBooking) time.Time { return m.CreatedAt }, specs)
	return out, nil
}

func (r *fakeMassRepo) Decide(ctx context.Context, id uuid.UUID, next workflow.State, remark string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.masses[id]
	if !ok || m.Status != workflow.StatusPending {
		return false, nil
	}
	m.Status, m.PaymentStatus, m.Remark = next.Status, next.PaymentStatus, remark
	return true, nil
}

func (r *fakeMassRepo) MarkPaid(ctx context.Context, id uuid.UUID, paymentId string, paidAt time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.masses[id]
	if !ok || m.Status != workflow.StatusApproved || m.PaymentStatus != workflow.PaymentPending {
		return false, nil
	}
	m.PaymentStatus, m.PaymentId, m.PaidAt = workflow.PaymentPaid, &paymentId, &paidAt
	return true, nil
}

type fakeIntentRepo struct{ s *memStore }

func (r *fakeIntentRepo) Create(ctx context.Context, intent *entity.PaymentIntent) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *intent
	r.s.intents[intent.Id] = &c
	return nil
}

func (r *fakeIntentRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.PaymentIntent, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, i := range r.s.intents {
		if matches(rowView{stringId: i.Id, userId: i.UserId, createdAt: i.CreatedAt}, specs) {
			c := *i
			return &c, nil
		}
	}
	return nil, nil
}

func (r *fakeIntentRepo) UpdateStatus(ctx context.Context, id string, status entity.PaymentIntentStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if i, ok := r.s.intents[id]; ok {
		i.Status = status
	}
	return nil
}

type fakeAnnouncementRepo struct{ s *memStore }

func announcementView(a *entity.Announcement) rowView {
	return rowView{id: a.Id, createdAt: a.CreatedAt}
}

func (r *fakeAnnouncementRepo) Create(ctx context.Context, a *entity.Announcement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *a
	r.s.announcements[a.Id] = &c
	return nil
}

func (r *fakeAnnouncementRepo) Update(ctx context.Context, a *entity.Announcement) error {
	return r.Create(ctx, a)
}

func (r *fakeAnnouncementRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.announcements, id)
	return nil
}

func (r *fakeAnnouncementRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Announcement, error) {
	all, _ := r.FindAll(ctx, specs...)
	if len(all) == 0 {
		return nil, nil
	}
	return all[0], nil
}

func (r *fakeAnnouncementRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Announcement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Announcement
	for _, a := range r.s.announcements {
		if matches(announcementView(a), specs) {
			c := *a
			out = append(out, &c)
		}
	}
	sortByCreated(out, func(a *entity.Announcement) time.Time { return a.CreatedAt }, specs)
	return out, nil
}

func (r *fakeAnnouncementRepo) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for id, a := range r.s.announcements {
		if a.CreatedAt.Before(cutoff) {
			delete(r.s.announcements, id)
			n++
		}
	}
	return n, nil
}

type fakeCalendarRepo struct{ s *memStore }

func (r *fakeCalendarRepo) Create(ctx context.Context, e *entity.CalendarEvent) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *e
	r.s.calendar[e.Id] = &c
	return nil
}

func (r *fakeCalendarRepo) Update(ctx context.Context, e *entity.CalendarEvent) error {
	return r.Create(ctx, e)
}

func (r *fakeCalendarRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.calendar, id)
	return nil
}

func (r *fakeCalendarRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CalendarEvent, error) {
	all, _ := r.FindAll(ctx, specs...)
	if len(all) == 0 {
		return nil, nil
	}
	return all[0], nil
}

// FindAll orders by start, the only ordering the calendar asks for.
func (r *fakeCalendarRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CalendarEvent, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.CalendarEvent
	for _, e := range r.s.calendar {
		if matches(rowView{id: e.Id, createdAt: e.CreatedAt}, specs) {
			c := *e
			out = append(out, &c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out, nil
}

type fakeGateway struct {
	mu       sync.Mutex
	statuses map[string]string
	requests []payment.IntentRequest
	failWith error
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{statuses: map[string]string{}}
}

func (g *fakeGateway) settle(paymentId string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.statuses[paymentId] = "settlement"
}

func (g *fakeGateway) CreateIntent(ctx context.Context, req payment.IntentRequest) (*payment.Intent, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failWith != nil {
		return nil, g.failWith
	}
	g.requests = append(g.requests, req)
	g.statuses[req.PaymentId] = "pending"
	return &payment.Intent{
		PaymentId:    req.PaymentId,
		ClientSecret: "snap-token-" + req.PaymentId,
		RedirectURL:  "https://pay.example/" + req.PaymentId,
	}, nil
}

func (g *fakeGateway) GetTransaction(ctx context.Context, paymentId string) (*payment.TransactionStatus, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	status, ok := g.statuses[paymentId]
	if !ok {
		return nil, errors.New("transaction not found")
	}
	return &payment.TransactionStatus{PaymentId: paymentId, TransactionStatus: status}, nil
}

type recordingDispatcher struct {
	mu   sync.Mutex
	sent []mailer.Message
}

func (d *recordingDispatcher) Enqueue(ctx context.Context, msg mailer.Message) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sent = append(d.sent, msg)
}

func (d *recordingDispatcher) messages() []mailer.Message {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]mailer.Message(nil), d.sent...)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, ev events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.EventType())
	}
	return out
}

// seedUser stores an account and returns the caller the middleware would resolve.
func (s *memStore) seedUser(name, email string, role entity.UserRole, verified bool) *entity.Caller {
	u := &entity.User{
		Id:                uuid.New(),
		Name:              name,
		Email:             email,
		Role:              role,
		IsAccountVerified: verified,
		CreatedAt:         time.Now(),
	}
	s.mu.Lock()
	s.users[u.Id] = u
	s.mu.Unlock()
	return &entity.Caller{UserId: u.Id, Email: u.Email, Role: role, IsVerified: verified}
}
