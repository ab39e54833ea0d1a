//go:build integration

package main_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shareloop/service-rental/internal/application"
	"github.com/shareloop/service-rental/internal/domain"
	"github.com/shareloop/service-rental/internal/events"
)

// TestBookingLifecycle drives a full reservation through the real stack:
// register users, list an item, request a booking, approve it, and verify
// the lifecycle events on booking.events.
func TestBookingLifecycle(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupRentalStack(t, infra.DB, infra.KafkaBrokers)
	defer stack.CleanupProducer()

	ctx := context.Background()

	owner, err := stack.Users.CreateUser(ctx, application.CreateUserRequest{Email: "owner@example.com", Name: "Owner"})
	require.NoError(t, err)
	booker, err := stack.Users.CreateUser(ctx, application.CreateUserRequest{Email: "booker@example.com", Name: "Booker"})
	require.NoError(t, err)

	available := true
	item, err := stack.Items.CreateItem(ctx, owner.ID, application.CreateItemRequest{
		Name: "Drill", Description: "Cordless drill", Available: &available,
	})
	require.NoError(t, err)

	start := time.Now().UTC().AddDate(0, 0, 4)
	end := start.AddDate(0, 0, 1)
	created, err := stack.Bookings.CreateBooking(ctx, booker.ID, application.CreateBookingRequest{
		ItemID: item.ID, Start: start, End: end,
	})
	require.NoError(t, err)
	assert.Equal(t, "WAITING", created.Status)

	ce := consumeOneEvent(t, infra.KafkaBrokers, events.TopicBookingEvents, events.BookingRequested, 15*time.Second)
	var requested events.BookingRequestedEvent
	require.NoError(t, ce.ParseData(&requested))
	assert.Equal(t, created.ID, requested.BookingID)
	assert.Equal(t, item.ID, requested.ItemID)
	assert.Equal(t, booker.ID, requested.BookerID)

	// A second booker whose start falls inside the waiting interval is refused.
	rival, err := stack.Users.CreateUser(ctx, application.CreateUserRequest{Email: "rival@example.com", Name: "Rival"})
	require.NoError(t, err)
	_, err = stack.Bookings.CreateBooking(ctx, rival.ID, application.CreateBookingRequest{
		ItemID: item.ID, Start: start.Add(6 * time.Hour), End: end.AddDate(0, 0, 2),
	})
	assert.True(t, domain.IsCode(err, domain.CodeValidation))

	decided, err := stack.Bookings.ConfirmBooking(ctx, owner.ID, created.ID, true)
	require.NoError(t, err)
	assert.Equal(t, "APPROVED", decided.Status)

	ce = consumeOneEvent(t, infra.KafkaBrokers, events.TopicBookingEvents, events.BookingApproved, 15*time.Second)
	var approved events.BookingDecidedEvent
	require.NoError(t, ce.ParseData(&approved))
	assert.Equal(t, created.ID, approved.BookingID)
	assert.Equal(t, "APPROVED", approved.Status)

	// The booker's FUTURE listing carries the approved booking.
	listed, err := stack.Bookings.ListByBooker(ctx, booker.ID, "FUTURE", 0, 10)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)
	assert.Equal(t, "APPROVED", listed[0].Status)
}

// TestCommentAfterFinishedBooking verifies the comment gate against real
// persistence: only a renter with a finished booking may comment.
func TestCommentAfterFinishedBooking(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupRentalStack(t, infra.DB, infra.KafkaBrokers)
	defer stack.CleanupProducer()

	ctx := context.Background()

	owner, err := stack.Users.CreateUser(ctx, application.CreateUserRequest{Email: "owner@example.com", Name: "Owner"})
	require.NoError(t, err)
	renter, err := stack.Users.CreateUser(ctx, application.CreateUserRequest{Email: "renter@example.com", Name: "Renter"})
	require.NoError(t, err)

	available := true
	item, err := stack.Items.CreateItem(ctx, owner.ID, application.CreateItemRequest{
		Name: "Ladder", Description: "Extendable ladder", Available: &available,
	})
	require.NoError(t, err)

	// Without a finished booking the comment is refused.
	_, err = stack.Items.AddComment(ctx, renter.ID, item.ID, application.AddCommentRequest{Text: "Sturdy"})
	assert.True(t, domain.IsCode(err, domain.CodeValidation))

	seedFinishedBooking(t, infra.DB, item.ID, renter.ID)

	comment, err := stack.Items.AddComment(ctx, renter.ID, item.ID, application.AddCommentRequest{Text: "Sturdy"})
	require.NoError(t, err)
	assert.Equal(t, "Renter", comment.AuthorName)

	// The comment shows up in the enriched item view.
	view, err := stack.Items.GetItem(ctx, renter.ID, item.ID)
	require.NoError(t, err)
	require.Len(t, view.Comments, 1)
	assert.Equal(t, "Sturdy", view.Comments[0].Text)
}
