package model

import "time"

// Item is a stocked inventory item. Stock is an absolute quantity;
// callers read it, compute the new value and write it back.
type Item struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	CurrentStock int       `json:"current_stock"`
	Unit         string    `json:"unit"`
	CreatedAt    time.Time `json:"created_at"`
}
