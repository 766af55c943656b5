package model

import "time"

// SyncReport summarises one sold item sync pass
type SyncReport struct {
	Fetched   int
	Stored    int
	Published int
	HasMore   bool
	// Cursor is the modification date the next window starts from
	Cursor time.Time
	// LastOrderID is set while a window is still being paged by order id
	LastOrderID int
	StartedAt   time.Time
}

// SyncState is the stored progress of the sold item sync. Afterbuy pages
// sold items by order id, so a window whose first page reports more items
// keeps its bounds and continues after the last order id it stored.
type SyncState struct {
	// Since is the lower ModDate bound of the open or the next window
	Since time.Time `json:"since"`
	// Window is set while a window is paged
	Window *SyncWindow `json:"window,omitempty"`
}

// SyncWindow pins the upper bound of a paged window
type SyncWindow struct {
	To          time.Time `json:"to"`
	LastOrderID int       `json:"last_order_id"`
}
