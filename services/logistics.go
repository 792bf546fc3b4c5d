package services

import (
	"context"
	"strings"
	"time"

	"tradehub/db"
	"tradehub/models"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

type LogisticsService struct {
	records db.Store[models.Logistics]
	offers  db.Store[models.Offer]
	bids    db.Store[models.Bid]
	now     func() time.Time
}

func NewLogisticsService(records db.Store[models.Logistics], offers db.Store[models.Offer], bids db.Store[models.Bid]) *LogisticsService {
	return &LogisticsService{records: records, offers: offers, bids: bids, now: time.Now}
}

type CreateLogisticsInput struct {
	OfferID               *uint      `json:"offerId"`
	BidID                 *uint      `json:"bidId"`
	DriverName            string     `json:"driverName" validate:"max=100"`
	DriverPhone           string     `json:"driverPhone" validate:"required,mobile"`
	TruckNumber           string     `json:"truckNumber" validate:"required,max=20"`
	TransportCompany      string     `json:"transportCompany" validate:"required,max=150"`
	EstimatedPickupDate   *time.Time `json:"estimatedPickupDate"`
	EstimatedDeliveryDate *time.Time `json:"estimatedDeliveryDate" validate:"required"`
	InvoiceURL            string     `json:"invoiceUrl" validate:"omitempty,url,max=500"`
	BiltyURL              string     `json:"biltyUrl" validate:"omitempty,url,max=500"`
	Insured               bool       `json:"insured"`
	Notes                 string     `json:"notes" validate:"max=2000"`
	TrackingID            string     `json:"trackingId" validate:"max=100"`
}

type UpdateLogisticsInput struct {
	DriverName            models.Optional[string]    `json:"driverName"`
	DriverPhone           models.Optional[string]    `json:"driverPhone"`
	TruckNumber           models.Optional[string]    `json:"truckNumber"`
	TransportCompany      models.Optional[string]    `json:"transportCompany"`
	EstimatedPickupDate   models.Optional[time.Time] `json:"estimatedPickupDate"`
	EstimatedDeliveryDate models.Optional[time.Time] `json:"estimatedDeliveryDate"`
	InvoiceURL            models.Optional[string]    `json:"invoiceUrl"`
	BiltyURL              models.Optional[string]    `json:"biltyUrl"`
	Insured               models.Optional[bool]      `json:"insured"`
	Notes                 models.Optional[string]    `json:"notes"`
	TrackingID            models.Optional[string]    `json:"trackingId"`
}

type UpdateStatusInput struct {
	Status string `json:"status"`
}

type LocationInput struct {
	Latitude  *float64 `json:"latitude" validate:"required,latitude"`
	Longitude *float64 `json:"longitude" validate:"required,longitude"`
}

func (s *LogisticsService) Create(ctx context.Context, in CreateLogisticsInput) (*models.Logistics, error) {
	switch {
	case in.OfferID == nil && in.BidID == nil:
		return nil, Validation("either offerId or bidId must be provided")
	case in.OfferID != nil && in.BidID != nil:
		return nil, Validation("provide exactly one of offerId or bidId")
	}
	in.DriverPhone = strings.TrimSpace(in.DriverPhone)
	in.TruckNumber = strings.ToUpper(strings.TrimSpace(in.TruckNumber))
	in.TransportCompany = strings.TrimSpace(in.TransportCompany)
	if err := Validate(in); err != nil {
		return nil, err
	}

	if in.OfferID != nil {
		if _, err := s.offers.FindUnique(ctx, *in.OfferID); err != nil {
			return nil, storeError(err, "offer")
		}
	}
	if in.BidID != nil {
		if _, err := s.bids.FindUnique(ctx, *in.BidID); err != nil {
			return nil, storeError(err, "bid")
		}
	}

	record := &models.Logistics{
		OfferID:               in.OfferID,
		BidID:                 in.BidID,
		DriverName:            strings.TrimSpace(in.DriverName),
		DriverPhone:           in.DriverPhone,
		TruckNumber:           in.TruckNumber,
		TransportCompany:      in.TransportCompany,
		Status:                models.LogisticsPending,
		EstimatedPickupDate:   in.EstimatedPickupDate,
		EstimatedDeliveryDate: in.EstimatedDeliveryDate,
		InvoiceURL:            in.InvoiceURL,
		BiltyURL:              in.BiltyURL,
		Insured:               in.Insured,
		Notes:                 in.Notes,
		TrackingID:            strings.TrimSpace(in.TrackingID),
	}
	if err := s.records.Create(ctx, record); err != nil {
		return nil, storeError(err, "logistics")
	}
	return record, nil
}

func (s *LogisticsService) Get(ctx context.Context, id uint) (*models.Logistics, error) {
	record, err := s.records.FindUnique(ctx, id)
	if err != nil {
		return nil, storeError(err, "logistics")
	}
	return record, nil
}

// ListByOffer returns every vehicle booked for the offer, oldest first.
func (s *LogisticsService) ListByOffer(ctx context.Context, offerID uint) ([]models.Logistics, error) {
	return s.listBy(ctx, "offer_id", offerID)
}

// ListByBid returns every vehicle booked for the bid, oldest first.
func (s *LogisticsService) ListByBid(ctx context.Context, bidID uint) ([]models.Logistics, error) {
	return s.listBy(ctx, "bid_id", bidID)
}

func (s *LogisticsService) listBy(ctx context.Context, column string, id uint) ([]models.Logistics, error) {
	records, err := s.records.FindAll(ctx, db.Filter{Equals: map[string]any{column: id}}, "createdAt", "asc")
	if err != nil {
		return nil, storeError(err, "logistics")
	}
	return records, nil
}

// UpdateStatus sets the status. The first move into IN_TRANSIT stamps the
// actual pickup date and the first move into DELIVERED stamps the actual
// delivery date; an existing stamp is never overwritten.
func (s *LogisticsService) UpdateStatus(ctx context.Context, id uint, in UpdateStatusInput) (*models.Logistics, error) {
	status := models.LogisticsStatus(strings.ToUpper(strings.TrimSpace(in.Status)))
	if !status.Valid() {
		names := make([]string, len(models.LogisticsStatuses))
		for i, st := range models.LogisticsStatuses {
			names[i] = string(st)
		}
		return nil, Validation("status must be one of [%s]", strings.Join(names, " "))
	}

	record, err := s.records.FindUnique(ctx, id)
	if err != nil {
		return nil, storeError(err, "logistics")
	}

	changes := map[string]any{"status": string(status)}
	now := s.now()
	switch status {
	case models.LogisticsInTransit:
		if record.ActualPickupDate == nil {
			changes["actual_pickup_date"] = now
		}
	case models.LogisticsDelivered:
		if record.ActualDeliveryDate == nil {
			changes["actual_delivery_date"] = now
		}
	}

	updated, err := s.records.Update(ctx, id, changes)
	if err != nil {
		return nil, storeError(err, "logistics")
	}
	return updated, nil
}

func (s *LogisticsService) Update(ctx context.Context, id uint, in UpdateLogisticsInput) (*models.Logistics, error) {
	if _, err := s.records.FindUnique(ctx, id); err != nil {
		return nil, storeError(err, "logistics")
	}

	changes := map[string]any{}
	required := []struct {
		name, column, tag string
		field             models.Optional[string]
	}{
		{"driverPhone", "driver_phone", "required,mobile", in.DriverPhone},
		{"truckNumber", "truck_number", "required,max=20", in.TruckNumber},
		{"transportCompany", "transport_company", "required,max=150", in.TransportCompany},
	}
	for _, f := range required {
		if !f.field.Set {
			continue
		}
		if f.field.Null {
			return nil, Validation("%s cannot be null", f.name)
		}
		value := strings.TrimSpace(f.field.Value)
		if f.column == "truck_number" {
			value = strings.ToUpper(value)
		}
		if err := validateField(f.name, value, f.tag); err != nil {
			return nil, err
		}
		changes[f.column] = value
	}

	optional := []struct {
		name, column, tag string
		field             models.Optional[string]
	}{
		{"driverName", "driver_name", "max=100", in.DriverName},
		{"invoiceUrl", "invoice_url", "omitempty,url,max=500", in.InvoiceURL},
		{"biltyUrl", "bilty_url", "omitempty,url,max=500", in.BiltyURL},
		{"notes", "notes", "max=2000", in.Notes},
		{"trackingId", "tracking_id", "max=100", in.TrackingID},
	}
	for _, f := range optional {
		if !f.field.Set {
			continue
		}
		value := strings.TrimSpace(f.field.Value)
		if err := validateField(f.name, value, f.tag); err != nil {
			return nil, err
		}
		changes[f.column] = value
	}

	if in.EstimatedPickupDate.Set {
		if in.EstimatedPickupDate.Null {
			changes["estimated_pickup_date"] = nil
		} else {
			changes["estimated_pickup_date"] = in.EstimatedPickupDate.Value
		}
	}
	if in.EstimatedDeliveryDate.Set {
		if in.EstimatedDeliveryDate.Null {
			return nil, Validation("estimatedDeliveryDate cannot be null")
		}
		changes["estimated_delivery_date"] = in.EstimatedDeliveryDate.Value
	}
	if in.Insured.Set {
		changes["insured"] = in.Insured.Present() && in.Insured.Value
	}

	updated, err := s.records.Update(ctx, id, changes)
	if err != nil {
		return nil, storeError(err, "logistics")
	}
	return updated, nil
}

// UpdateLocation records the truck's last reported position.
func (s *LogisticsService) UpdateLocation(ctx context.Context, id uint, in LocationInput) (*models.Logistics, error) {
	if err := Validate(in); err != nil {
		return nil, err
	}
	if _, err := s.records.FindUnique(ctx, id); err != nil {
		return nil, storeError(err, "logistics")
	}
	updated, err := s.records.Update(ctx, id, map[string]any{
		"last_latitude":    *in.Latitude,
		"last_longitude":   *in.Longitude,
		"last_location_at": s.now(),
	})
	if err != nil {
		return nil, storeError(err, "logistics")
	}
	return updated, nil
}

// Track returns the last known position as a GeoJSON point feature.
func (s *LogisticsService) Track(ctx context.Context, id uint) (*geojson.Feature, error) {
	record, err := s.records.FindUnique(ctx, id)
	if err != nil {
		return nil, storeError(err, "logistics")
	}
	if record.LastLatitude == nil || record.LastLongitude == nil {
		return nil, NotFound("no location reported for logistics %d", id)
	}

	f := geojson.NewFeature(orb.Point{*record.LastLongitude, *record.LastLatitude})
	f.ID = record.ID
	f.Properties["status"] = record.Status
	f.Properties["truckNumber"] = record.TruckNumber
	f.Properties["trackingId"] = record.TrackingID
	f.Properties["reportedAt"] = record.LastLocationAt
	return f, nil
}
