package billing_test

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/jhoicas/lavadero-api/internal/application/billing"
	"github.com/jhoicas/lavadero-api/internal/domain"
	"github.com/jhoicas/lavadero-api/internal/domain/entity"
	"github.com/jhoicas/lavadero-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Almacén en memoria con transacciones: las escrituras de RunSale quedan en un
// buffer y se publican solo en Commit. LockSequence retiene un mutex por par
// establecimiento/punto hasta el fin de la transacción.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu         sync.Mutex
	config     *entity.CompanyConfig
	customers  map[string]entity.Customer
	services   map[string]entity.Service
	combos     map[string]entity.ServiceCombo
	items      map[string]entity.InventoryItem
	workOrders map[string]entity.WorkOrder
	sales      map[string]*entity.Sale

	seqMu    sync.Mutex
	seqLocks map[string]*sync.Mutex

	// failCreateItem simula una falla al insertar líneas (después de la cabecera).
	failCreateItem error
	// failCreateSale simula una falla al insertar la cabecera.
	failCreateSale error
	runs           int
}

func newMemStore() *memStore {
	return &memStore{
		customers:  map[string]entity.Customer{},
		services:   map[string]entity.Service{},
		combos:     map[string]entity.ServiceCombo{},
		items:      map[string]entity.InventoryItem{},
		workOrders: map[string]entity.WorkOrder{},
		sales:      map[string]*entity.Sale{},
		seqLocks:   map[string]*sync.Mutex{},
	}
}

var _ billing.SaleTxRunner = (*memStore)(nil)

func (s *memStore) RunSale(ctx context.Context, fn func(
	saleRepo repository.SaleRepository,
	workOrderRepo repository.WorkOrderRepository,
	inventoryRepo repository.InventoryItemRepository,
) error) error {
	s.mu.Lock()
	s.runs++
	s.mu.Unlock()

	tx := &memTx{
		store:      s,
		workOrders: map[string]entity.WorkOrder{},
		items:      map[string]entity.InventoryItem{},
	}
	defer tx.release()

	if err := fn(&txSaleRepo{tx: tx}, &txWorkOrderRepo{tx: tx}, &txInventoryRepo{tx: tx}); err != nil {
		return err
	}
	return tx.commit()
}

func (s *memStore) seqLock(key string) *sync.Mutex {
	s.seqMu.Lock()
	defer s.seqMu.Unlock()
	m, ok := s.seqLocks[key]
	if !ok {
		m = &sync.Mutex{}
		s.seqLocks[key] = m
	}
	return m
}

func (s *memStore) saleCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sales)
}

func (s *memStore) invoiceNumbers() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.sales))
	for _, sale := range s.sales {
		out = append(out, sale.InvoiceNumber)
	}
	sort.Strings(out)
	return out
}

func (s *memStore) workOrder(id string) entity.WorkOrder {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.workOrders[id]
}

func (s *memStore) item(id string) entity.InventoryItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items[id]
}

// ── Transacción ───────────────────────────────────────────────────────────────

type memTx struct {
	store      *memStore
	locks      []*sync.Mutex
	sales      []*entity.Sale
	workOrders map[string]entity.WorkOrder
	items      map[string]entity.InventoryItem
}

func (tx *memTx) release() {
	for i := len(tx.locks) - 1; i >= 0; i-- {
		tx.locks[i].Unlock()
	}
	tx.locks = nil
}

func (tx *memTx) commit() error {
	s := tx.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sale := range tx.sales {
		for _, existing := range s.sales {
			if existing.InvoiceNumber == sale.InvoiceNumber {
				return domain.ErrDuplicate
			}
		}
	}
	for _, sale := range tx.sales {
		s.sales[sale.ID] = sale
	}
	for id, wo := range tx.workOrders {
		s.workOrders[id] = wo
	}
	for id, it := range tx.items {
		s.items[id] = it
	}
	return nil
}

type txSaleRepo struct {
	repository.SaleRepository
	tx *memTx
}

func (r *txSaleRepo) LockSequence(_ context.Context, establishment, pointOfSale string) error {
	m := r.tx.store.seqLock(establishment + "-" + pointOfSale)
	m.Lock()
	r.tx.locks = append(r.tx.locks, m)
	return nil
}

func (r *txSaleRepo) LastInvoiceNumber(_ context.Context, establishment, pointOfSale string) (string, error) {
	prefix := establishment + "-" + pointOfSale + "-"
	last := ""
	for _, sale := range r.tx.sales {
		if strings.HasPrefix(sale.InvoiceNumber, prefix) && sale.InvoiceNumber > last {
			last = sale.InvoiceNumber
		}
	}
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sale := range s.sales {
		if strings.HasPrefix(sale.InvoiceNumber, prefix) && sale.InvoiceNumber > last {
			last = sale.InvoiceNumber
		}
	}
	return last, nil
}

func (r *txSaleRepo) Create(_ context.Context, sale *entity.Sale) error {
	if err := r.tx.store.failCreateSale; err != nil {
		return err
	}
	cp := *sale
	cp.Items = nil
	r.tx.sales = append(r.tx.sales, &cp)
	return nil
}

func (r *txSaleRepo) CreateItem(_ context.Context, item *entity.SaleItem) error {
	if err := r.tx.store.failCreateItem; err != nil {
		return err
	}
	for _, sale := range r.tx.sales {
		if sale.ID == item.SaleID {
			cp := *item
			sale.Items = append(sale.Items, &cp)
			return nil
		}
	}
	return errors.New("sale_items: violación de clave foránea")
}

type txWorkOrderRepo struct {
	repository.WorkOrderRepository
	tx *memTx
}

func (r *txWorkOrderRepo) GetForUpdate(_ context.Context, id string) (*entity.WorkOrder, error) {
	if wo, ok := r.tx.workOrders[id]; ok {
		return &wo, nil
	}
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()
	wo, ok := s.workOrders[id]
	if !ok {
		return nil, nil
	}
	return &wo, nil
}

func (r *txWorkOrderRepo) UpdateStatus(_ context.Context, wo *entity.WorkOrder) error {
	r.tx.workOrders[wo.ID] = *wo
	return nil
}

type txInventoryRepo struct {
	repository.InventoryItemRepository
	tx *memTx
}

func (r *txInventoryRepo) GetForUpdate(_ context.Context, id string) (*entity.InventoryItem, error) {
	if it, ok := r.tx.items[id]; ok {
		return &it, nil
	}
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.items[id]
	if !ok {
		return nil, nil
	}
	return &it, nil
}

func (r *txInventoryRepo) UpdateStock(_ context.Context, it *entity.InventoryItem) error {
	r.tx.items[it.ID] = *it
	return nil
}

// ── Repos fuera de transacción (lecturas de datos confirmados) ───────────────

type configRepo struct {
	store *memStore
	err   error
}

func (r *configRepo) Get(context.Context) (*entity.CompanyConfig, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.config == nil {
		return nil, nil
	}
	cp := *r.store.config
	return &cp, nil
}

func (r *configRepo) Upsert(_ context.Context, cfg *entity.CompanyConfig) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *cfg
	r.store.config = &cp
	return nil
}

type customerRepo struct {
	repository.CustomerRepository
	store *memStore
}

func (r *customerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c, ok := r.store.customers[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *customerRepo) GetByDocument(_ context.Context, docType, docNumber string) (*entity.Customer, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, c := range r.store.customers {
		if c.DocType == docType && c.DocNumber == docNumber {
			cp := c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *customerRepo) Create(_ context.Context, c *entity.Customer) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.customers[c.ID] = *c
	return nil
}

func (r *customerRepo) Update(_ context.Context, c *entity.Customer) error {
	return r.Create(context.Background(), c)
}

func (r *customerRepo) List(_ context.Context, search string, limit, offset int) ([]*entity.Customer, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.Customer
	for _, c := range r.store.customers {
		if search == "" || strings.Contains(strings.ToLower(c.Name), strings.ToLower(search)) || strings.Contains(c.DocNumber, search) {
			cp := c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type serviceRepo struct {
	repository.ServiceRepository
	store *memStore
}

func (r *serviceRepo) GetByID(_ context.Context, id string) (*entity.Service, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	s, ok := r.store.services[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

type comboRepo struct {
	repository.ServiceComboRepository
	store *memStore
}

func (r *comboRepo) GetByID(_ context.Context, id string) (*entity.ServiceCombo, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c, ok := r.store.combos[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

type inventoryRepo struct {
	repository.InventoryItemRepository
	store *memStore
}

func (r *inventoryRepo) GetByID(_ context.Context, id string) (*entity.InventoryItem, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	it, ok := r.store.items[id]
	if !ok {
		return nil, nil
	}
	return &it, nil
}

type workOrderRepo struct {
	repository.WorkOrderRepository
	store *memStore
}

func (r *workOrderRepo) GetByID(_ context.Context, id string) (*entity.WorkOrder, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	wo, ok := r.store.workOrders[id]
	if !ok {
		return nil, nil
	}
	return &wo, nil
}

type saleRepo struct {
	repository.SaleRepository
	store *memStore
}

func (r *saleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	s, ok := r.store.sales[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *saleRepo) GetByInvoiceNumber(_ context.Context, number string) (*entity.Sale, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, s := range r.store.sales {
		if s.InvoiceNumber == number {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *saleRepo) List(_ context.Context, limit, offset int) ([]*entity.Sale, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]*entity.Sale, 0, len(r.store.sales))
	for _, s := range r.store.sales {
		cp := *s
		cp.Items = nil
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].InvoiceNumber > out[j].InvoiceNumber })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
