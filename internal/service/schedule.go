package service

import (
	"context"
	"log"

	"github.com/yeep/bus-reservation/internal/model"
	"github.com/yeep/bus-reservation/internal/repository"
)

// TripTime is one departure/arrival pair of a route's daily timetable.
type TripTime struct {
	Departure string
	Arrival   string
}

// routePlan is a shuttle line with its fixed daily timetable.
type routePlan struct {
	Color       string
	Name        string
	Description string
	Times       []TripTime
}

// routePlans holds the campus shuttle network.  Timetables are fixed
// per line and repeat every service day.
var routePlans = []routePlan{
	{
		Color:       "green",
		Name:        "Green Line",
		Description: "Dormitory S16-S18 to Lecture Building 1",
		Times: []TripTime{
			{"07:07", "07:27"}, {"07:14", "07:34"}, {"07:21", "07:41"},
			{"07:28", "07:48"}, {"07:35", "07:55"}, {"07:42", "08:02"},
			{"07:49", "08:09"}, {"07:56", "08:16"}, {"08:03", "08:23"},
			{"08:10", "08:30"}, {"09:00", "09:20"}, {"09:30", "09:50"},
		},
	},
	{
		Color:       "purple",
		Name:        "Purple Line",
		Description: "Dormitory S4 to Lecture Building 1",
		Times: []TripTime{
			{"07:05", "07:20"}, {"07:10", "07:25"}, {"07:15", "07:30"},
			{"07:20", "07:35"}, {"07:25", "07:40"}, {"07:30", "07:45"},
			{"07:35", "07:50"}, {"07:40", "07:55"}, {"07:45", "08:00"},
			{"07:50", "08:05"}, {"08:30", "08:45"}, {"09:00", "09:15"},
		},
	},
	{
		Color:       "orange",
		Name:        "Orange Line",
		Description: "Lecture Building 1 to Transport Terminal",
		Times: []TripTime{
			{"07:25", "07:35"}, {"07:40", "07:50"}, {"07:55", "08:05"},
			{"08:10", "08:20"}, {"08:25", "08:35"}, {"08:40", "08:50"},
			{"08:55", "09:05"},
		},
	},
	{
		Color:       "red",
		Name:        "Red Line",
		Description: "Transport Terminal to Dormitory S16-S18",
		Times: []TripTime{
			{"09:10", "10:10"}, {"10:20", "11:20"}, {"11:30", "12:30"},
			{"12:40", "13:40"}, {"13:50", "14:50"}, {"15:00", "16:00"},
			{"16:10", "17:10"}, {"17:20", "18:20"}, {"18:30", "19:30"},
			{"19:40", "20:40"},
		},
	},
	{
		Color:       "yellow",
		Name:        "Yellow Line",
		Description: "Dormitory S13 to Front Gate Market",
		Times: []TripTime{
			{"17:30", "18:00"}, {"18:00", "18:30"}, {"18:30", "19:00"},
		},
	},
	{
		Color:       "blue",
		Name:        "Blue Line",
		Description: "Transport Terminal to University Hospital",
		Times: []TripTime{
			{"08:30", "09:00"}, {"12:00", "12:30"}, {"16:30", "17:00"},
		},
	},
}

// ScheduleService seeds routes and daily trips from the fixed
// timetables and sweeps out expired data.  Seeding is idempotent so it
// can run on every startup.
type ScheduleService struct {
	routes   *repository.RouteRepo
	trips    *repository.TripRepo
	bookings *repository.BookingRepo
}

func NewScheduleService(routes *repository.RouteRepo, trips *repository.TripRepo, bookings *repository.BookingRepo) *ScheduleService {
	return &ScheduleService{routes: routes, trips: trips, bookings: bookings}
}

// SeedRoutes inserts the shuttle lines, skipping any that already
// exist.
func (s *ScheduleService) SeedRoutes(ctx context.Context) error {
	for _, plan := range routePlans {
		rt := model.Route{Name: plan.Name, Color: plan.Color, Description: plan.Description}
		if err := s.routes.Upsert(ctx, &rt); err != nil {
			return storageErr(err)
		}
	}
	return nil
}

// SeedTrips materializes every line's timetable for a service day.
// Trips that already exist for that day are left untouched, including
// their bookings.
func (s *ScheduleService) SeedTrips(ctx context.Context, date string) error {
	for _, plan := range routePlans {
		rt := model.Route{Name: plan.Name, Color: plan.Color, Description: plan.Description}
		if err := s.routes.Upsert(ctx, &rt); err != nil {
			return storageErr(err)
		}
		for i, tt := range plan.Times {
			t := model.Trip{
				RouteID:       rt.ID,
				TripNumber:    i + 1,
				TripDate:      date,
				DepartureTime: tt.Departure,
				ArrivalTime:   tt.Arrival,
				TotalSeats:    model.DefaultTotalSeats,
			}
			if err := s.trips.Create(ctx, &t); err != nil {
				return storageErr(err)
			}
		}
	}
	log.Printf("schedule: seeded trips for %s", date)
	return nil
}

// Purge deletes bookings and trips dated strictly before the given day.
// Bookings go first so trips never dangle, and the returned counts are
// what was actually removed.
func (s *ScheduleService) Purge(ctx context.Context, before string) (bookings, trips int64, err error) {
	bookings, err = s.bookings.DeleteBefore(ctx, before)
	if err != nil {
		return 0, 0, storageErr(err)
	}
	trips, err = s.trips.DeleteBefore(ctx, before)
	if err != nil {
		return bookings, 0, storageErr(err)
	}
	log.Printf("schedule: purged %d bookings and %d trips before %s", bookings, trips, before)
	return bookings, trips, nil
}

// Routes lists the shuttle lines from storage.
func (s *ScheduleService) Routes(ctx context.Context) ([]model.Route, error) {
	out, err := s.routes.List(ctx)
	if err != nil {
		return nil, storageErr(err)
	}
	return out, nil
}
