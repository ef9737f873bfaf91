package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"pharma-backend/internal/models"
)

// mockDemandeStore keeps demandes in memory and records the linked
// notification created alongside each demande.
type mockDemandeStore struct {
	nextID        int
	demandes      map[int]*models.Demande
	notifications []*models.Notification
	failCreate    error
	listed        []models.DemandeWithSupplier
}

func newMockDemandeStore() *mockDemandeStore {
	return &mockDemandeStore{nextID: 1, demandes: make(map[int]*models.Demande)}
}

func (m *mockDemandeStore) CreateWithNotification(ctx context.Context, d *models.Demande, message string) (*models.Notification, error) {
	if m.failCreate != nil {
		return nil, m.failCreate
	}
	d.ID = m.nextID
	d.Status = models.DemandeStatusPending
	m.nextID++
	m.demandes[d.ID] = d

	demandeID := d.ID
	n := &models.Notification{
		ID:         d.ID,
		Medicament: d.Medicament,
		Quantity:   d.Quantity,
		PharmacyID: d.PharmacyID,
		SupplierID: d.SupplierID,
		Message:    message,
		Status:     models.NotificationStatusPending,
		DemandeID:  &demandeID,
	}
	m.notifications = append(m.notifications, n)
	return n, nil
}

func (m *mockDemandeStore) Get(ctx context.Context, id int) (*models.Demande, error) {
	d, ok := m.demandes[id]
	if !ok {
		return nil, errors.New("no rows in result set")
	}
	return d, nil
}

func (m *mockDemandeStore) UpdateStatus(ctx context.Context, id int, status string) (int64, error) {
	d, ok := m.demandes[id]
	if !ok {
		return 0, nil
	}
	d.Status = status
	return 1, nil
}

func (m *mockDemandeStore) ListByPharmacy(ctx context.Context, pharmacyID int) ([]models.DemandeWithSupplier, error) {
	return m.listed, nil
}

// mockStockStore tracks quantities keyed by medicament name + pharmacy.
type mockStockStore struct {
	quantities map[string]int
	missing    bool
	increments int
}

func newMockStockStore() *mockStockStore {
	return &mockStockStore{quantities: make(map[string]int)}
}

func stockKey(name string, pharmacyID int) string {
	return fmt.Sprintf("%s|%d", name, pharmacyID)
}

func (m *mockStockStore) IncrementQuantity(ctx context.Context, name string, pharmacyID, delta int) (int64, error) {
	if m.missing {
		return 0, nil
	}
	m.quantities[stockKey(name, pharmacyID)] += delta
	m.increments++
	return 1, nil
}

// mockPublisher records published notifications.
type mockPublisher struct {
	published []*models.Notification
}

func (m *mockPublisher) Publish(n *models.Notification) {
	m.published = append(m.published, n)
}

// mockNotificationStore backs the notification reviewer tests.
type mockNotificationStore struct {
	nextID   int
	statuses map[int]string
	created  []*models.Notification
	listed   []models.NotificationWithPharmacy
}

func newMockNotificationStore() *mockNotificationStore {
	return &mockNotificationStore{nextID: 1, statuses: make(map[int]string)}
}

func (m *mockNotificationStore) Create(ctx context.Context, n *models.Notification) error {
	n.ID = m.nextID
	n.Status = models.NotificationStatusPending
	m.nextID++
	m.statuses[n.ID] = n.Status
	m.created = append(m.created, n)
	return nil
}

func (m *mockNotificationStore) ListAll(ctx context.Context) ([]models.NotificationWithPharmacy, error) {
	return m.listed, nil
}

func (m *mockNotificationStore) ListBySupplier(ctx context.Context, supplierID int) ([]models.NotificationWithPharmacy, error) {
	var out []models.NotificationWithPharmacy
	for _, n := range m.listed {
		if n.SupplierID != nil && *n.SupplierID == supplierID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m *mockNotificationStore) UpdateStatus(ctx context.Context, id int, status string) (int64, error) {
	if _, ok := m.statuses[id]; !ok {
		return 0, nil
	}
	m.statuses[id] = status
	return 1, nil
}

// uniqueViolationErr mimics the driver error for a UNIQUE constraint hit.
func uniqueViolationErr() error {
	return &pgconn.PgError{Code: "23505", ConstraintName: "email_key"}
}

// mockPharmacyStore keeps pharmacies and their linked login accounts in
// memory. The email unique index is enforced on insert, like the DB
// does; blindCheck makes EmailExists report false so the constraint is
// the only defense, as under a concurrent duplicate create.
type mockPharmacyStore struct {
	nextID     int
	pharmacies map[int]*models.Pharmacy
	hashes     map[int]string
	blindCheck bool
}

func newMockPharmacyStore() *mockPharmacyStore {
	return &mockPharmacyStore{
		nextID:     1,
		pharmacies: make(map[int]*models.Pharmacy),
		hashes:     make(map[int]string),
	}
}

func (m *mockPharmacyStore) CreateWithAccount(ctx context.Context, p *models.Pharmacy, account *models.User) error {
	for _, existing := range m.pharmacies {
		if existing.Email == p.Email {
			return uniqueViolationErr()
		}
	}
	account.ID = m.nextID + 1000
	account.Role = "pharmacist"
	account.IsActive = true
	p.ID = m.nextID
	p.IsActive = true
	p.AccountID = &account.ID
	m.nextID++
	m.pharmacies[p.ID] = p
	m.hashes[p.ID] = account.PasswordHash
	return nil
}

func (m *mockPharmacyStore) Get(ctx context.Context, id int) (*models.Pharmacy, error) {
	p, ok := m.pharmacies[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return p, nil
}

func (m *mockPharmacyStore) List(ctx context.Context) ([]*models.Pharmacy, error) {
	var out []*models.Pharmacy
	for _, p := range m.pharmacies {
		out = append(out, p)
	}
	return out, nil
}

func (m *mockPharmacyStore) EmailExists(ctx context.Context, email string, excludeID int) (bool, error) {
	if m.blindCheck {
		return false, nil
	}
	for _, p := range m.pharmacies {
		if p.Email == email && p.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockPharmacyStore) UpdateWithAccount(ctx context.Context, p *models.Pharmacy) (int64, error) {
	existing, ok := m.pharmacies[p.ID]
	if !ok {
		return 0, nil
	}
	existing.Name = p.Name
	existing.Email = p.Email
	existing.Phone = p.Phone
	existing.President = p.President
	return 1, nil
}

func (m *mockPharmacyStore) UpdatePassword(ctx context.Context, id int, passwordHash string) (int64, error) {
	if _, ok := m.pharmacies[id]; !ok {
		return 0, nil
	}
	m.hashes[id] = passwordHash
	return 1, nil
}

func (m *mockPharmacyStore) GetAccountHash(ctx context.Context, id int) (string, error) {
	hash, ok := m.hashes[id]
	if !ok {
		return "", pgx.ErrNoRows
	}
	return hash, nil
}

func (m *mockPharmacyStore) SetActiveStatus(ctx context.Context, id int, isActive bool) (int64, error) {
	p, ok := m.pharmacies[id]
	if !ok {
		return 0, nil
	}
	p.IsActive = isActive
	return 1, nil
}

func (m *mockPharmacyStore) DeleteWithAccount(ctx context.Context, id int) (int64, error) {
	if _, ok := m.pharmacies[id]; !ok {
		return 0, nil
	}
	delete(m.pharmacies, id)
	delete(m.hashes, id)
	return 1, nil
}

// mockAccountChecker answers the cross-table email pre-check.
type mockAccountChecker struct {
	emails map[string]bool
}

func (m *mockAccountChecker) EmailExists(ctx context.Context, email string, excludeID int) (bool, error) {
	return m.emails[email], nil
}

// mockUserStore backs the login-account tests.
type mockUserStore struct {
	nextID         int
	users          map[int]*models.User
	failGetByEmail error
}

func newMockUserStore() *mockUserStore {
	return &mockUserStore{nextID: 1, users: make(map[int]*models.User)}
}

func (m *mockUserStore) Create(ctx context.Context, u *models.User) error {
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return uniqueViolationErr()
		}
	}
	u.ID = m.nextID
	u.IsActive = true
	m.nextID++
	m.users[u.ID] = u
	return nil
}

func (m *mockUserStore) Get(ctx context.Context, id int) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return u, nil
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.failGetByEmail != nil {
		return nil, m.failGetByEmail
	}
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *mockUserStore) EmailExists(ctx context.Context, email string, excludeID int) (bool, error) {
	for _, u := range m.users {
		if u.Email == email && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUserStore) List(ctx context.Context) ([]*models.User, error) {
	var out []*models.User
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}

func (m *mockUserStore) Update(ctx context.Context, u *models.User) (int64, error) {
	existing, ok := m.users[u.ID]
	if !ok {
		return 0, nil
	}
	existing.Name = u.Name
	existing.Email = u.Email
	existing.Role = u.Role
	return 1, nil
}

func (m *mockUserStore) UpdatePassword(ctx context.Context, id int, passwordHash string) (int64, error) {
	u, ok := m.users[id]
	if !ok {
		return 0, nil
	}
	u.PasswordHash = passwordHash
	return 1, nil
}

func (m *mockUserStore) SetActiveStatus(ctx context.Context, id int, isActive bool) (int64, error) {
	u, ok := m.users[id]
	if !ok {
		return 0, nil
	}
	u.IsActive = isActive
	return 1, nil
}

func (m *mockUserStore) Delete(ctx context.Context, id int) (int64, error) {
	if _, ok := m.users[id]; !ok {
		return 0, nil
	}
	delete(m.users, id)
	return 1, nil
}

// mockMedicamentStore keeps stock items in memory with the same
// (name, pharmacy) uniqueness the table enforces.
type mockMedicamentStore struct {
	nextID int
	items  map[int]*models.Medicament
}

func newMockMedicamentStore() *mockMedicamentStore {
	return &mockMedicamentStore{nextID: 1, items: make(map[int]*models.Medicament)}
}

func (m *mockMedicamentStore) Create(ctx context.Context, item *models.Medicament) error {
	for _, existing := range m.items {
		if existing.Name == item.Name && existing.PharmacyID == item.PharmacyID {
			return uniqueViolationErr()
		}
	}
	item.ID = m.nextID
	m.nextID++
	m.items[item.ID] = item
	return nil
}

func (m *mockMedicamentStore) Get(ctx context.Context, id int) (*models.Medicament, error) {
	item, ok := m.items[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return item, nil
}

func (m *mockMedicamentStore) List(ctx context.Context) ([]*models.Medicament, error) {
	var out []*models.Medicament
	for _, item := range m.items {
		out = append(out, item)
	}
	return out, nil
}

func (m *mockMedicamentStore) SetQuantity(ctx context.Context, id int, quantity int) (int64, error) {
	item, ok := m.items[id]
	if !ok {
		return 0, nil
	}
	item.Quantity = quantity
	return 1, nil
}

func (m *mockMedicamentStore) IncrementQuantity(ctx context.Context, name string, pharmacyID, delta int) (int64, error) {
	for _, item := range m.items {
		if item.Name == name && item.PharmacyID == pharmacyID {
			item.Quantity += delta
			return 1, nil
		}
	}
	return 0, nil
}
