package services

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

var (
	ErrNotFound            = errors.New("record not found")
	ErrDuplicateRoomNumber = errors.New("room number already exists")
	ErrDuplicateMac        = errors.New("mac address already registered")
	ErrDuplicateUser       = errors.New("username or email already exists")
	ErrInvalidReference    = errors.New("referenced record does not belong to user")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrRoomInactive        = errors.New("room is not active")
	ErrInvalidUpload       = errors.New("invalid upload")
)

// mysqlDuplicateEntry is ER_DUP_ENTRY.
const mysqlDuplicateEntry = 1062

func isDuplicateKey(err error) bool {
	var merr *mysql.MySQLError
	if errors.As(err, &merr) {
		return merr.Number == mysqlDuplicateEntry
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// notFound maps gorm's missing-row error onto ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// duplicateRoomError tells the two unique indexes on rooms apart.
func duplicateRoomError(err error) error {
	var merr *mysql.MySQLError
	if errors.As(err, &merr) && strings.Contains(merr.Message, "idx_rooms_mac_key") {
		return ErrDuplicateMac
	}
	return ErrDuplicateRoomNumber
}
