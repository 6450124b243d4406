// Package memory implementa los repositorios y el TxRunner en memoria (STORAGE_DRIVER=memory).
// Una unidad de trabajo toma el mutex del store, trabaja sobre una copia del estado y la publica
// solo si fn termina sin error, así que Run es atómico y serializa todas las escrituras.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/Repuestos-api/internal/application/catalog"
	"github.com/jhoicas/Repuestos-api/internal/application/orders"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
)

var _ orders.TxRunner = (*Store)(nil)
var _ catalog.StockTxRunner = (*Store)(nil)

type state struct {
	stock    []*entity.StockRecord
	orders   []*entity.Order
	items    []*entity.OrderItem
	cart     []*entity.CartItem
	profiles map[string]*entity.CustomerProfile
}

func newState() *state {
	return &state{profiles: make(map[string]*entity.CustomerProfile)}
}

func (s *state) clone() *state {
	out := &state{
		stock:    make([]*entity.StockRecord, len(s.stock)),
		orders:   make([]*entity.Order, len(s.orders)),
		items:    make([]*entity.OrderItem, len(s.items)),
		cart:     make([]*entity.CartItem, len(s.cart)),
		profiles: make(map[string]*entity.CustomerProfile, len(s.profiles)),
	}
	for i, r := range s.stock {
		c := *r
		out.stock[i] = &c
	}
	for i, o := range s.orders {
		c := *o
		out.orders[i] = &c
	}
	for i, it := range s.items {
		c := *it
		out.items[i] = &c
	}
	for i, it := range s.cart {
		c := *it
		out.cart[i] = &c
	}
	for k, p := range s.profiles {
		c := *p
		out.profiles[k] = &c
	}
	return out
}

// Store estado compartido de todos los repositorios en memoria.
type Store struct {
	mu   sync.Mutex
	data *state
	now  func() time.Time
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{data: newState(), now: time.Now}
}

// view da acceso al estado: el de la transacción en curso (ya bloqueado) o el del store,
// bloqueando el mutex durante la llamada.
type view struct {
	store *Store
	tx    *state
}

func (v view) with(fn func(st *state) error) error {
	if v.tx != nil {
		return fn(v.tx)
	}
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	return fn(v.store.data)
}

func (v view) now() time.Time {
	return v.store.now()
}

// Run ejecuta fn con repositorios atados a una copia del estado y la publica si no hay error.
// Dentro de fn solo deben usarse los repositorios recibidos: los del store volverían a tomar el mutex.
func (s *Store) Run(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	orderRepo repository.OrderRepository,
	itemRepo repository.OrderItemRepository,
	cartRepo repository.CartRepository,
) error) error {
	return s.run(ctx, func(v view) error {
		return fn(&StockRepo{v: v}, &OrderRepo{v: v}, &OrderItemRepo{v: v}, &CartRepo{v: v})
	})
}

// RunStock unidad de trabajo solo con el libro de existencias.
func (s *Store) RunStock(ctx context.Context, fn func(stockRepo repository.StockRepository) error) error {
	return s.run(ctx, func(v view) error {
		return fn(&StockRepo{v: v})
	})
}

func (s *Store) run(ctx context.Context, body func(v view) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.data.clone()
	if err := body(view{store: s, tx: work}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.data = work
	return nil
}

// Stock repositorio de existencias fuera de transacción.
func (s *Store) Stock() *StockRepo { return &StockRepo{v: view{store: s}} }

// Orders repositorio de pedidos fuera de transacción.
func (s *Store) Orders() *OrderRepo { return &OrderRepo{v: view{store: s}} }

// OrderItems repositorio de líneas de pedido fuera de transacción.
func (s *Store) OrderItems() *OrderItemRepo { return &OrderItemRepo{v: view{store: s}} }

// Cart repositorio del carrito fuera de transacción.
func (s *Store) Cart() *CartRepo { return &CartRepo{v: view{store: s}} }

// Profiles repositorio de perfiles de cliente.
func (s *Store) Profiles() *CustomerProfileRepo { return &CustomerProfileRepo{v: view{store: s}} }
