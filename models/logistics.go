package models

import "time"

type LogisticsStatus string

const (
	LogisticsPending   LogisticsStatus = "PENDING"
	LogisticsInTransit LogisticsStatus = "IN_TRANSIT"
	LogisticsDelivered LogisticsStatus = "DELIVERED"
	LogisticsCancelled LogisticsStatus = "CANCELLED"
)

var LogisticsStatuses = []LogisticsStatus{
	LogisticsPending, LogisticsInTransit, LogisticsDelivered, LogisticsCancelled,
}

func (s LogisticsStatus) Valid() bool {
	for _, known := range LogisticsStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Logistics is one vehicle moving goods for an offer or a bid.
// A shipment split across several trucks has several records.
type Logistics struct {
	ID                    uint            `gorm:"primaryKey" json:"id"`
	OfferID               *uint           `gorm:"index" json:"offerId"`
	BidID                 *uint           `gorm:"index" json:"bidId"`
	DriverName            string          `gorm:"size:100" json:"driverName"`
	DriverPhone           string          `gorm:"size:10;not null" json:"driverPhone"`
	TruckNumber           string          `gorm:"size:20;not null" json:"truckNumber"`
	TransportCompany      string          `gorm:"size:150;not null" json:"transportCompany"`
	Status                LogisticsStatus `gorm:"size:20;not null;default:PENDING;index" json:"status"`
	EstimatedPickupDate   *time.Time      `json:"estimatedPickupDate"`
	EstimatedDeliveryDate *time.Time      `json:"estimatedDeliveryDate"`
	ActualPickupDate      *time.Time      `json:"actualPickupDate"`
	ActualDeliveryDate    *time.Time      `json:"actualDeliveryDate"`
	InvoiceURL            string          `gorm:"size:500" json:"invoiceUrl"`
	BiltyURL              string          `gorm:"size:500" json:"biltyUrl"`
	Insured               bool            `gorm:"not null;default:false" json:"insured"`
	Notes                 string          `gorm:"type:text" json:"notes"`
	TrackingID            string          `gorm:"size:100;index" json:"trackingId"`
	LastLatitude          *float64        `json:"lastLatitude"`
	LastLongitude         *float64        `json:"lastLongitude"`
	LastLocationAt        *time.Time      `json:"lastLocationAt"`
	CreatedAt             time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt             time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Logistics) TableName() string {
	return "logistics"
}
