package models

import (
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

// Container is the canonical, server-enriched record of one roll-off container.
// ID is the container number ("CNT-004") chosen by the operator.
type Container struct {
	ID                string      `json:"id"`
	Status            Status      `json:"status"`
	Location          string      `json:"location,omitempty"`
	Contents          string      `json:"contents,omitempty"`
	CurrentCustomerID *int64      `json:"current_customer_id,omitempty"`
	DateDropped       *civil.Date `json:"date_dropped,omitempty"`

	// Заполняются только для Dumped.
	Weight     *float64    `json:"weight,omitempty"`
	DateDumped *civil.Date `json:"date_dumped,omitempty"`

	LastUpdated time.Time `json:"last_updated"`
	UpdatedBy   string    `json:"updated_by,omitempty"`
}

func (c Container) Archived() bool {
	return c.Status.Terminal()
}

// Disposal is the part of a container record that only exists once it is dumped.
type Disposal struct {
	Weight     float64    `json:"weight" validate:"gte=0,lte=50,tenths"`
	DateDumped civil.Date `json:"date_dumped" validate:"-"`
}

// ContainerDraft is what an operator submits to create or edit a container.
// Disposal is required for Dumped and ignored for every other status.
type ContainerDraft struct {
	ID                string      `json:"id" validate:"required,max=64"`
	Status            Status      `json:"status" validate:"required,status"`
	Location          string      `json:"location,omitempty" validate:"max=512"`
	Contents          string      `json:"contents,omitempty" validate:"max=1024"`
	CurrentCustomerID *int64      `json:"current_customer_id,omitempty" validate:"omitempty,gt=0"`
	DateDropped       *civil.Date `json:"date_dropped,omitempty"`
	Disposal          *Disposal   `json:"disposal,omitempty"`
}

// NormalizeContainerID trims the number and upper-cases it.
func NormalizeContainerID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

// Container flattens the draft into the wire record. Server-assigned fields stay zero.
func (d ContainerDraft) Container() Container {
	c := Container{
		ID:                NormalizeContainerID(d.ID),
		Status:            d.Status,
		Location:          strings.TrimSpace(d.Location),
		Contents:          strings.TrimSpace(d.Contents),
		CurrentCustomerID: d.CurrentCustomerID,
		DateDropped:       d.DateDropped,
	}
	if d.Status.Terminal() && d.Disposal != nil {
		w := d.Disposal.Weight
		dd := d.Disposal.DateDumped
		c.Weight = &w
		c.DateDumped = &dd
	}
	return c
}

// DraftOf rebuilds the draft an edit form starts from.
func DraftOf(c Container) ContainerDraft {
	d := ContainerDraft{
		ID:                c.ID,
		Status:            c.Status,
		Location:          c.Location,
		Contents:          c.Contents,
		CurrentCustomerID: c.CurrentCustomerID,
		DateDropped:       c.DateDropped,
	}
	if c.Status.Terminal() && (c.Weight != nil || c.DateDumped != nil) {
		d.Disposal = &Disposal{}
		if c.Weight != nil {
			d.Disposal.Weight = *c.Weight
		}
		if c.DateDumped != nil {
			d.Disposal.DateDumped = *c.DateDumped
		}
	}
	return d
}
