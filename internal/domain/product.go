package domain

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID            uuid.UUID
	Name          string
	Description   string // empty means none
	CurrentPrice  Money
	PreviousPrice Money
	PicturePath   string
	InStock       int
	FlashSale     bool

	CreatedAt time.Time
}
