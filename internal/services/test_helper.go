package services

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/venuetix/ticketing/internal/repository"
	"github.com/venuetix/ticketing/pkg/pg"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupServiceDB(t *testing.T) (*pg.DB, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&repository.OperatorEntity{},
		&repository.TicketEntity{},
		&repository.TransactionEntity{},
		&repository.UserTicketEntity{},
		&repository.SpecialTicketEntity{},
		&repository.InvoiceCounterEntity{},
	)
	require.NoError(t, err)

	pgDB := &pg.DB{}
	pgDBValue := reflect.ValueOf(pgDB).Elem()

	readField := pgDBValue.FieldByName("read")
	writeField := pgDBValue.FieldByName("write")

	readField = reflect.NewAt(readField.Type(), readField.Addr().UnsafePointer()).Elem()
	writeField = reflect.NewAt(writeField.Type(), writeField.Addr().UnsafePointer()).Elem()

	readField.Set(reflect.ValueOf(db))
	writeField.Set(reflect.ValueOf(db))

	return pgDB, db
}
