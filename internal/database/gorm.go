package database

import (
	"fmt"
	"sync"
	"time"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres" // Postgres driver
	_ "github.com/mattn/go-sqlite3"              // SQLite driver
	"go.uber.org/zap"

	"backoffice/internal/models"
)

type outletRow struct {
	ID   string `gorm:"primary_key"`
	Seq  int64  `gorm:"index"`
	Name string
}

func (outletRow) TableName() string { return "outlets" }

type orderRow struct {
	ID        string `gorm:"primary_key"`
	Seq       int64  `gorm:"index"`
	Outlet    string `gorm:"index"`
	TableNo   string `gorm:"column:table_no"`
	Customer  string
	Type      string
	Status    string `gorm:"index"`
	CreatedAt time.Time
	Items     []orderItemRow `gorm:"foreignkey:OrderID"`
}

func (orderRow) TableName() string { return "orders" }

type orderItemRow struct {
	ID       uint   `gorm:"primary_key"`
	OrderID  string `gorm:"index"`
	Position int
	Name     string
	Quantity int
	Price    float64
}

func (orderItemRow) TableName() string { return "order_items" }

type reservationRow struct {
	ID           string `gorm:"primary_key"`
	Seq          int64  `gorm:"index"`
	CustomerName string
	Phone        string
	Guests       int
	Date         string `gorm:"index"`
	Time         string
	TableNo      string `gorm:"column:table_no"`
	Notes        string
	Status       string `gorm:"index"`
	CreatedAt    time.Time
}

func (reservationRow) TableName() string { return "reservations" }

func toOrderRow(o models.Order, seq int64) orderRow {
	row := orderRow{
		ID:        o.ID,
		Seq:       seq,
		Outlet:    o.Outlet,
		TableNo:   o.Table,
		Customer:  o.Customer,
		Type:      string(o.Type),
		Status:    string(o.Status),
		CreatedAt: o.CreatedAt,
	}
	for i, item := range o.Items {
		row.Items = append(row.Items, orderItemRow{
			OrderID:  o.ID,
			Position: i,
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}
	return row
}

func (r orderRow) model() models.Order {
	o := models.Order{
		ID:        r.ID,
		Outlet:    r.Outlet,
		Table:     r.TableNo,
		Customer:  r.Customer,
		Type:      models.OrderType(r.Type),
		Status:    models.OrderStatus(r.Status),
		CreatedAt: r.CreatedAt,
		Items:     make([]models.OrderItem, 0, len(r.Items)),
	}
	for _, item := range r.Items {
		o.Items = append(o.Items, models.OrderItem{Name: item.Name, Quantity: item.Quantity, Price: item.Price})
	}
	return o
}

func toReservationRow(r models.Reservation, seq int64) reservationRow {
	return reservationRow{
		ID:           r.ID,
		Seq:          seq,
		CustomerName: r.CustomerName,
		Phone:        r.Phone,
		Guests:       r.Guests,
		Date:         r.Date,
		Time:         r.Time,
		TableNo:      r.Table,
		Notes:        r.Notes,
		Status:       string(r.Status),
		CreatedAt:    r.CreatedAt,
	}
}

func (r reservationRow) model() models.Reservation {
	return models.Reservation{
		ID:           r.ID,
		CustomerName: r.CustomerName,
		Phone:        r.Phone,
		Guests:       r.Guests,
		Date:         r.Date,
		Time:         r.Time,
		Table:        r.TableNo,
		Notes:        r.Notes,
		Status:       models.ReservationStatus(r.Status),
		CreatedAt:    r.CreatedAt,
	}
}

// gormLogger forwards gorm's SQL log lines to zap at debug level
type gormLogger struct {
	log *zap.SugaredLogger
}

func (l gormLogger) Print(v ...interface{}) {
	l.log.Debugw("gorm", "entry", v)
}

// GormStore persists records through gorm. Writes are serialized so
// sequence numbers stay dense.
type GormStore struct {
	db *gorm.DB
	mu sync.Mutex
}

// OpenGorm connects to driver with dsn and migrates the schema.
// An empty sqlite3 dsn opens a private in-memory database.
func OpenGorm(driver, dsn string, logger *zap.Logger) (*GormStore, error) {
	if driver == DriverSQLite && dsn == "" {
		dsn = ":memory:"
	}
	db, err := gorm.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	if driver == DriverSQLite {
		// every sqlite connection to :memory: is a separate database
		db.DB().SetMaxOpenConns(1)
	}
	if logger != nil {
		db.SetLogger(gormLogger{log: logger.Sugar()})
		db.LogMode(logger.Core().Enabled(zap.DebugLevel))
	}
	if err := db.AutoMigrate(&outletRow{}, &orderRow{}, &orderItemRow{}, &reservationRow{}).Error; err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	return &GormStore{db: db}, nil
}

func (s *GormStore) nextSeq(tx *gorm.DB, table string) (int64, error) {
	var last struct{ Seq int64 }
	if err := tx.Table(table).Select("COALESCE(MAX(seq), 0) AS seq").Scan(&last).Error; err != nil {
		return 0, err
	}
	return last.Seq + 1, nil
}

func (s *GormStore) exists(tx *gorm.DB, row interface{}, id string) (bool, error) {
	err := tx.Where("id = ?", id).First(row).Error
	if gorm.IsRecordNotFoundError(err) {
		return false, nil
	}
	return err == nil, err
}

func (s *GormStore) ListOrders() ([]models.Order, error) {
	var rows []orderRow
	err := s.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	}).Order("seq").Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	out := make([]models.Order, len(rows))
	for i, r := range rows {
		out[i] = r.model()
	}
	return out, nil
}

func (s *GormStore) getOrder(tx *gorm.DB, id string) (orderRow, error) {
	var row orderRow
	err := tx.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	}).Where("id = ?", id).First(&row).Error
	if gorm.IsRecordNotFoundError(err) {
		return row, fmt.Errorf("order %s: %w", id, ErrNotFound)
	}
	return row, err
}

func (s *GormStore) GetOrder(id string) (models.Order, error) {
	row, err := s.getOrder(s.db, id)
	if err != nil {
		return models.Order{}, err
	}
	return row.model(), nil
}

func (s *GormStore) InsertOrder(o models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transact(func(tx *gorm.DB) error {
		found, err := s.exists(tx, &orderRow{}, o.ID)
		if err != nil {
			return err
		}
		if found {
			return fmt.Errorf("order %s: %w", o.ID, ErrDuplicate)
		}
		seq, err := s.nextSeq(tx, "orders")
		if err != nil {
			return err
		}
		row := toOrderRow(o, seq)
		return tx.Create(&row).Error
	})
}

func (s *GormStore) UpdateOrderStatus(id string, step OrderStep) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out models.Order
	err := s.transact(func(tx *gorm.DB) error {
		row, err := s.getOrder(tx, id)
		if err != nil {
			return err
		}
		next, err := step(row.model())
		if err != nil {
			return err
		}
		if err := tx.Model(&orderRow{}).Where("id = ?", id).Update("status", string(next.Status)).Error; err != nil {
			return err
		}
		row.Status = string(next.Status)
		out = row.model()
		return nil
	})
	return out, err
}

func (s *GormStore) ListReservations() ([]models.Reservation, error) {
	var rows []reservationRow
	if err := s.db.Order("seq").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	out := make([]models.Reservation, len(rows))
	for i, r := range rows {
		out[i] = r.model()
	}
	return out, nil
}

func (s *GormStore) getReservation(tx *gorm.DB, id string) (reservationRow, error) {
	var row reservationRow
	err := tx.Where("id = ?", id).First(&row).Error
	if gorm.IsRecordNotFoundError(err) {
		return row, fmt.Errorf("reservation %s: %w", id, ErrNotFound)
	}
	return row, err
}

func (s *GormStore) GetReservation(id string) (models.Reservation, error) {
	row, err := s.getReservation(s.db, id)
	if err != nil {
		return models.Reservation{}, err
	}
	return row.model(), nil
}

func (s *GormStore) InsertReservation(r models.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transact(func(tx *gorm.DB) error {
		found, err := s.exists(tx, &reservationRow{}, r.ID)
		if err != nil {
			return err
		}
		if found {
			return fmt.Errorf("reservation %s: %w", r.ID, ErrDuplicate)
		}
		seq, err := s.nextSeq(tx, "reservations")
		if err != nil {
			return err
		}
		row := toReservationRow(r, seq)
		return tx.Create(&row).Error
	})
}

func (s *GormStore) UpdateReservationStatus(id string, step ReservationStep) (models.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out models.Reservation
	err := s.transact(func(tx *gorm.DB) error {
		row, err := s.getReservation(tx, id)
		if err != nil {
			return err
		}
		next, err := step(row.model())
		if err != nil {
			return err
		}
		if err := tx.Model(&reservationRow{}).Where("id = ?", id).Update("status", string(next.Status)).Error; err != nil {
			return err
		}
		row.Status = string(next.Status)
		out = row.model()
		return nil
	})
	return out, err
}

func (s *GormStore) ListOutlets() ([]models.Outlet, error) {
	var rows []outletRow
	if err := s.db.Order("seq").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list outlets: %w", err)
	}
	out := make([]models.Outlet, len(rows))
	for i, r := range rows {
		out[i] = models.Outlet{ID: r.ID, Name: r.Name}
	}
	return out, nil
}

func (s *GormStore) InsertOutlet(o models.Outlet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transact(func(tx *gorm.DB) error {
		found, err := s.exists(tx, &outletRow{}, o.ID)
		if err != nil {
			return err
		}
		if found {
			return fmt.Errorf("outlet %s: %w", o.ID, ErrDuplicate)
		}
		seq, err := s.nextSeq(tx, "outlets")
		if err != nil {
			return err
		}
		return tx.Create(&outletRow{ID: o.ID, Seq: seq, Name: o.Name}).Error
	})
}

// transact runs fn in a transaction, rolling back on error
func (s *GormStore) transact(fn func(tx *gorm.DB) error) error {
	tx := s.db.Begin()
	if tx.Error != nil {
		return tx.Error
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}

// Close closes the underlying connection pool
func (s *GormStore) Close() error {
	return s.db.Close()
}
