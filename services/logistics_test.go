package services

import (
	"context"
	"testing"
	"time"

	"tradehub/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type logisticsFixture struct {
	svc   *LogisticsService
	offer *models.Offer
	bid   *models.Bid
	clock *time.Time
}

func newLogisticsFixture(t *testing.T) *logisticsFixture {
	t.Helper()
	repos := newRepos(t)
	ctx := context.Background()

	category := &models.Category{Name: "Metals", IsActive: true}
	require.NoError(t, repos.Categories.Create(ctx, category))
	req := &models.Requirement{
		Title: "500 tonnes TMT", BuyerID: 7, CategoryID: category.ID,
		Quantity: decimal.NewFromInt(500), Status: models.RequirementApproved,
	}
	require.NoError(t, repos.Requirements.Create(ctx, req))
	offer := &models.Offer{RequirementID: req.ID, SellerID: 3, Price: decimal.NewFromInt(52000), Quantity: decimal.NewFromInt(500)}
	require.NoError(t, repos.Offers.Create(ctx, offer))
	product := &models.Product{Name: "Cement bag", SellerID: 3, Price: decimal.NewFromInt(350), MOQ: decimal.NewFromInt(100), IsActive: true}
	require.NoError(t, repos.Products.Create(ctx, product))
	bid := &models.Bid{ProductID: product.ID, BuyerID: 7, Amount: decimal.NewFromInt(340), Quantity: decimal.NewFromInt(200)}
	require.NoError(t, repos.Bids.Create(ctx, bid))

	clock := time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)
	f := &logisticsFixture{offer: offer, bid: bid, clock: &clock}
	f.svc = NewLogisticsService(repos.Logistics, repos.Offers, repos.Bids)
	f.svc.now = func() time.Time { return *f.clock }
	return f
}

func validLogisticsInput() CreateLogisticsInput {
	eta := time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)
	return CreateLogisticsInput{
		DriverName:            "Ramesh",
		DriverPhone:           "9123456789",
		TruckNumber:           "mh12ab1234",
		TransportCompany:      "VRL Logistics",
		EstimatedDeliveryDate: &eta,
	}
}

func TestLogisticsCreateRequiresExactlyOneReference(t *testing.T) {
	f := newLogisticsFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, validLogisticsInput())
	require.Equal(t, KindValidation, KindOf(err))

	in := validLogisticsInput()
	in.OfferID, in.BidID = &f.offer.ID, &f.bid.ID
	_, err = f.svc.Create(ctx, in)
	require.Equal(t, KindValidation, KindOf(err))

	in = validLogisticsInput()
	in.OfferID = ptr(uint(9999))
	_, err = f.svc.Create(ctx, in)
	require.Equal(t, KindNotFound, KindOf(err))

	in = validLogisticsInput()
	in.BidID = ptr(uint(9999))
	_, err = f.svc.Create(ctx, in)
	require.Equal(t, KindNotFound, KindOf(err))

	in = validLogisticsInput()
	in.BidID = &f.bid.ID
	rec, err := f.svc.Create(ctx, in)
	require.NoError(t, err)
	require.Equal(t, models.LogisticsPending, rec.Status)
	require.Equal(t, "MH12AB1234", rec.TruckNumber)
	require.Nil(t, rec.ActualPickupDate)
}

func TestLogisticsDriverPhone(t *testing.T) {
	f := newLogisticsFixture(t)
	ctx := context.Background()

	in := validLogisticsInput()
	in.OfferID = &f.offer.ID
	in.DriverPhone = "5123456789"
	_, err := f.svc.Create(ctx, in)
	require.Equal(t, KindValidation, KindOf(err))
	require.Contains(t, err.Error(), "driverPhone")

	in.DriverPhone = "9123456789"
	_, err = f.svc.Create(ctx, in)
	require.NoError(t, err)

	require.False(t, ValidMobile("912345678"))
	require.False(t, ValidMobile("91234567890"))
	require.True(t, ValidMobile("6000000000"))
}

func TestLogisticsStatusStampsOnce(t *testing.T) {
	f := newLogisticsFixture(t)
	ctx := context.Background()

	in := validLogisticsInput()
	in.OfferID = &f.offer.ID
	rec, err := f.svc.Create(ctx, in)
	require.NoError(t, err)

	pickedUp := *f.clock
	rec, err = f.svc.UpdateStatus(ctx, rec.ID, UpdateStatusInput{Status: "IN_TRANSIT"})
	require.NoError(t, err)
	require.Equal(t, models.LogisticsInTransit, rec.Status)
	require.NotNil(t, rec.ActualPickupDate)
	require.True(t, pickedUp.Equal(*rec.ActualPickupDate))
	require.Nil(t, rec.ActualDeliveryDate)

	*f.clock = f.clock.Add(6 * time.Hour)
	rec, err = f.svc.UpdateStatus(ctx, rec.ID, UpdateStatusInput{Status: "PENDING"})
	require.NoError(t, err)
	rec, err = f.svc.UpdateStatus(ctx, rec.ID, UpdateStatusInput{Status: "in_transit"})
	require.NoError(t, err)
	require.True(t, pickedUp.Equal(*rec.ActualPickupDate), "pickup date must not be re-stamped")

	*f.clock = f.clock.Add(48 * time.Hour)
	delivered := *f.clock
	rec, err = f.svc.UpdateStatus(ctx, rec.ID, UpdateStatusInput{Status: "DELIVERED"})
	require.NoError(t, err)
	require.True(t, delivered.Equal(*rec.ActualDeliveryDate))

	*f.clock = f.clock.Add(time.Hour)
	rec, err = f.svc.UpdateStatus(ctx, rec.ID, UpdateStatusInput{Status: "DELIVERED"})
	require.NoError(t, err)
	require.True(t, delivered.Equal(*rec.ActualDeliveryDate))

	_, err = f.svc.UpdateStatus(ctx, rec.ID, UpdateStatusInput{Status: "LOST"})
	require.Equal(t, KindValidation, KindOf(err))
	_, err = f.svc.UpdateStatus(ctx, 9999, UpdateStatusInput{Status: "DELIVERED"})
	require.Equal(t, KindNotFound, KindOf(err))
}

func TestLogisticsListByOfferOldestFirst(t *testing.T) {
	f := newLogisticsFixture(t)
	ctx := context.Background()

	var ids []uint
	for _, truck := range []string{"KA01AA0001", "KA01AA0002", "KA01AA0003"} {
		in := validLogisticsInput()
		in.OfferID = &f.offer.ID
		in.TruckNumber = truck
		rec, err := f.svc.Create(ctx, in)
		require.NoError(t, err)
		ids = append(ids, rec.ID)
	}
	in := validLogisticsInput()
	in.BidID = &f.bid.ID
	_, err := f.svc.Create(ctx, in)
	require.NoError(t, err)

	records, err := f.svc.ListByOffer(ctx, f.offer.ID)
	require.NoError(t, err)
	require.Len(t, records, 3)
	for i, rec := range records {
		require.Equal(t, ids[i], rec.ID)
	}

	records, err = f.svc.ListByBid(ctx, f.bid.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)

	records, err = f.svc.ListByOffer(ctx, 9999)
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestLogisticsPatch(t *testing.T) {
	f := newLogisticsFixture(t)
	ctx := context.Background()

	in := validLogisticsInput()
	in.OfferID = &f.offer.ID
	pickup := time.Date(2025, 1, 16, 0, 0, 0, 0, time.UTC)
	in.EstimatedPickupDate = &pickup
	in.Notes = "fragile"
	rec, err := f.svc.Create(ctx, in)
	require.NoError(t, err)

	rec, err = f.svc.Update(ctx, rec.ID, UpdateLogisticsInput{
		DriverPhone:         models.Some("8123456789"),
		EstimatedPickupDate: models.Null[time.Time](),
		Insured:             models.Some(true),
	})
	require.NoError(t, err)
	require.Equal(t, "8123456789", rec.DriverPhone)
	require.Nil(t, rec.EstimatedPickupDate)
	require.True(t, rec.Insured)
	require.Equal(t, "fragile", rec.Notes)

	_, err = f.svc.Update(ctx, rec.ID, UpdateLogisticsInput{DriverPhone: models.Some("1234")})
	require.Equal(t, KindValidation, KindOf(err))
	_, err = f.svc.Update(ctx, rec.ID, UpdateLogisticsInput{TruckNumber: models.Null[string]()})
	require.Equal(t, KindValidation, KindOf(err))
	_, err = f.svc.Update(ctx, 9999, UpdateLogisticsInput{Notes: models.Some("x")})
	require.Equal(t, KindNotFound, KindOf(err))
}

func TestLogisticsLocationAndTrack(t *testing.T) {
	f := newLogisticsFixture(t)
	ctx := context.Background()

	in := validLogisticsInput()
	in.OfferID = &f.offer.ID
	in.TrackingID = "TRK-1"
	rec, err := f.svc.Create(ctx, in)
	require.NoError(t, err)

	_, err = f.svc.Track(ctx, rec.ID)
	require.Equal(t, KindNotFound, KindOf(err))

	_, err = f.svc.UpdateLocation(ctx, rec.ID, LocationInput{Latitude: ptr(95.0), Longitude: ptr(72.8)})
	require.Equal(t, KindValidation, KindOf(err))

	_, err = f.svc.UpdateLocation(ctx, rec.ID, LocationInput{Latitude: ptr(19.07), Longitude: ptr(72.87)})
	require.NoError(t, err)

	feature, err := f.svc.Track(ctx, rec.ID)
	require.NoError(t, err)
	pt := feature.Point()
	require.InDelta(t, 72.87, pt.Lon(), 1e-9)
	require.InDelta(t, 19.07, pt.Lat(), 1e-9)
	require.Equal(t, "TRK-1", feature.Properties["trackingId"])
}
