package service

import (
	"context"
	"testing"
	"time"

	"parish-portal-be/internal/dto"
	"parish-portal-be/internal/entity"
	"parish-portal-be/internal/pkg/apperror"
	"parish-portal-be/internal/pkg/logger"
	"parish-portal-be/internal/repository/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCalendarFixture() (*memStore, ICalendarEventService) {
	store := newMemStore()
	return store, NewCalendarEventService(fakeFactory{store}, memory.NewListingCache(time.Minute), logger.NewNopLogger())
}

func TestCalendarCreateDefaults(t *testing.T) {
	_, svc := newCalendarFixture()
	admin := &entity.Caller{UserId: uuid.New(), Email: "office@parish.test", Role: entity.UserRoleAdmin}

	legacy, err := svc.Create(context.Background(), admin, &dto.CalendarEventRequest{
		Title: "Parish feast",
		Date:  "2030-08-15",
	})
	require.NoError(t, err)
	assert.Equal(t, "2030-08-15", legacy.Start)
	assert.Equal(t, "2030-08-15", legacy.End)
	assert.Equal(t, "2030-08-15", legacy.Date)
	assert.Equal(t, "event", legacy.Type)
	assert.Equal(t, "office@parish.test", legacy.CreatedBy)

	widget, err := svc.Create(context.Background(), nil, &dto.CalendarEventRequest{
		Title:         "Vigil",
		Start:         "2030-04-19T20:00:00Z",
		End:           "2030-04-19T23:00:00Z",
		ExtendedProps: &dto.CalendarEventExtendedProps{Description: "Easter vigil", Type: "mass"},
	})
	require.NoError(t, err)
	assert.Equal(t, "mass", widget.Type)
	assert.Equal(t, "Easter vigil", widget.Description)
	assert.Equal(t, "admin", widget.CreatedBy)

	cal := widget.CalendarFormat()
	assert.Equal(t, widget.Id, cal.Id)
	assert.Equal(t, widget.Id, cal.LegacyId)
	assert.Equal(t, "2030-04-19T23:00:00Z", cal.End)
	assert.Equal(t, "mass", cal.ExtendedProps.Type)
}

func TestCalendarCreateValidation(t *testing.T) {
	_, svc := newCalendarFixture()

	_, err := svc.Create(context.Background(), nil, &dto.CalendarEventRequest{Title: "No date"})
	requireKind(t, err, apperror.KindValidation, "Title and date/start are required")

	_, err = svc.Create(context.Background(), nil, &dto.CalendarEventRequest{Title: "Odd", Date: "2030-01-01", Type: "concert"})
	requireKind(t, err, apperror.KindValidation, "Invalid event type")
}

func TestCalendarListSortedByStart(t *testing.T) {
	_, svc := newCalendarFixture()
	ctx := context.Background()

	for _, d := range []string{"2030-03-01", "2030-01-01", "2030-02-01"} {
		_, err := svc.Create(ctx, nil, &dto.CalendarEventRequest{Title: "Event " + d, Date: d})
		require.NoError(t, err)
	}

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "2030-01-01", list[0].Start)
	assert.Equal(t, "2030-03-01", list[2].Start)
}

func TestCalendarUpdateAndDelete(t *testing.T) {
	_, svc := newCalendarFixture()
	ctx := context.Background()

	created, err := svc.Create(ctx, nil, &dto.CalendarEventRequest{Title: "Retreat", Start: "2030-06-01", End: "2030-06-03", Type: "special", Description: "Youth"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.Id, &dto.CalendarEventRequest{Start: "2030-06-02"})
	require.NoError(t, err)
	assert.Equal(t, "Retreat", updated.Title)
	assert.Equal(t, "2030-06-02", updated.Start)
	assert.Equal(t, "2030-06-03", updated.End)
	assert.Equal(t, "event", updated.Type, "type falls back when not resent")
	assert.Empty(t, updated.Description)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, svc.Delete(ctx, created.Id))
	list, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	err = svc.Delete(ctx, created.Id)
	requireKind(t, err, apperror.KindNotFound, "Event not found")

	_, err = svc.Update(ctx, "not-an-id", &dto.CalendarEventRequest{Title: "x"})
	requireKind(t, err, apperror.KindNotFound, "Event not found")
}
