package services

import (
	"time"

	"parttrack/logger"
	"parttrack/models"
	"parttrack/notify"
	"parttrack/repositories"
)

// Deps are the collaborators every service is built from.
type Deps struct {
	Store    *repositories.Store
	Log      *logger.Logger
	Notifier notify.Notifier
	// Now defaults to time.Now in UTC.
	Now func() time.Time
}

func (d Deps) withDefaults() Deps {
	if d.Log == nil {
		d.Log = logger.Nop()
	}
	if d.Notifier == nil {
		d.Notifier = notify.Nop{}
	}
	if d.Now == nil {
		d.Now = func() time.Time { return time.Now().UTC() }
	}
	return d
}

// Services bundles everything the HTTP layer calls.
type Services struct {
	Receiving  *ReceivingService
	Shipping   *ShippingService
	Boms       *BomService
	Containers *ContainerService
	Locations  *LocationService
	Categories *CategoryService
}

func New(d Deps) *Services {
	d = d.withDefaults()
	return &Services{
		Receiving:  NewReceivingService(d),
		Shipping:   NewShippingService(d),
		Boms:       NewBomService(d),
		Containers: NewContainerService(d),
		Locations:  NewLocationService(d),
		Categories: NewCategoryService(d),
	}
}

func historyRow(bom *models.Bom, refNo, kind, by string, now time.Time) models.InventoryHistory {
	return models.InventoryHistory{
		RefNo:     refNo,
		JobNumber: bom.JobNumber,
		BomID:     bom.ID,
		Type:      kind,
		CreatedBy: by,
		CreatedAt: now,
	}
}
