package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/Freeeeeet/tutoring_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/tutoring_bot/internal/model"
	"github.com/Freeeeeet/tutoring_bot/internal/schedule"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// memoryStore - хранилище занятий в памяти для прогона генерации без базы
type memoryStore struct {
	mu       sync.Mutex
	sessions []*model.Session
}

func (s *memoryStore) ListSessionRefs(_ context.Context) ([]model.SessionRef, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	refs := make([]model.SessionRef, 0, len(s.sessions))
	for _, session := range s.sessions {
		refs = append(refs, model.SessionRef{StudentID: session.StudentID, TutorID: session.TutorID, Date: session.Date})
	}
	return refs, nil
}

func (s *memoryStore) Create(_ context.Context, session *model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	session.ID = uuid.New()
	session.CreatedAt = time.Now()
	s.sessions = append(s.sessions, session)
	return nil
}

func main() {
	out := flag.String("out", "week.png", "output PNG file")
	tz := flag.String("tz", "UTC", "IANA timezone for the week")
	day := flag.String("day", "", "any day of the week to render, YYYY-MM-DD (default: today)")
	flag.Parse()

	loc, err := time.LoadLocation(*tz)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid timezone: %v\n", err)
		os.Exit(1)
	}

	target := time.Now().In(loc)
	if *day != "" {
		target, err = time.ParseInLocation("2006-01-02", *day, loc)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid day: %v\n", err)
			os.Exit(1)
		}
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	store := &memoryStore{}
	expander := schedule.NewExpander(store, loc, logger)

	from, to := schedule.WeekWindow(target)
	enrollments := sampleEnrollments(from)
	sessions, stats, err := expander.ExpandWithStats(context.Background(), from, to, enrollments)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generation failed: %v\n", err)
		os.Exit(1)
	}
	attachProfiles(sessions, enrollments)

	// Одно занятие перенесено, одно проведено, чтобы были видны все цвета
	if len(sessions) > 2 {
		sessions[0].Status = model.SessionStatusComplete
		sessions[len(sessions)-1].Status = model.SessionStatusRescheduled
	}

	imageData, err := common.GenerateWeekImage(target, sessions, common.WeekImageOptions{Location: loc})
	if err != nil {
		fmt.Fprintf(os.Stderr, "render failed: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(*out, imageData, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Saved %s\n", *out)
	fmt.Printf("Week: %s - %s\n", from.Format("2006-01-02"), to.Format("2006-01-02"))
	fmt.Printf("Sessions: %d created, %d invalid slots\n", stats.Created, stats.InvalidSlots)
}

func sampleEnrollments(weekStart time.Time) []*model.Enrollment {
	ada := profile(model.ProfileRoleStudent, "Ada", "Lovelace")
	grace := profile(model.ProfileRoleStudent, "Grace", "Hopper")
	alan := profile(model.ProfileRoleTutor, "Alan", "Turing")
	emmy := profile(model.ProfileRoleTutor, "Emmy", "Noether")

	return []*model.Enrollment{
		enrollment(ada, alan, weekStart, []model.AvailabilitySlot{
			{Day: "Monday", StartTime: "15:00", EndTime: "16:00"},
			{Day: "Thursday", StartTime: "10:00", EndTime: "11:30"},
		}),
		enrollment(grace, emmy, weekStart, []model.AvailabilitySlot{
			{Day: "Tuesday", StartTime: "09:00", EndTime: "10:00"},
			{Day: "Friday", StartTime: "17:30", EndTime: "19:00"},
			{Day: "Saturday", StartTime: "12:00", EndTime: "13:00"},
		}),
		enrollment(grace, alan, weekStart, []model.AvailabilitySlot{
			{Day: "Wednesday", StartTime: "14:00", EndTime: "15:00"},
			{Day: "Wednesday", StartTime: "14:00-15:00"},
		}),
	}
}

func attachProfiles(sessions []*model.Session, enrollments []*model.Enrollment) {
	profiles := make(map[uuid.UUID]*model.Profile)
	for _, e := range enrollments {
		profiles[e.Student.ID] = e.Student
		profiles[e.Tutor.ID] = e.Tutor
	}
	for _, s := range sessions {
		s.Student = profiles[s.StudentID]
		s.Tutor = profiles[s.TutorID]
	}
}

func profile(role model.ProfileRole, first, last string) *model.Profile {
	return &model.Profile{ID: uuid.New(), Role: role, FirstName: first, LastName: last, Status: model.ProfileStatusActive}
}

func enrollment(student, tutor *model.Profile, start time.Time, slots []model.AvailabilitySlot) *model.Enrollment {
	return &model.Enrollment{
		ID:           uuid.New(),
		StudentID:    &student.ID,
		TutorID:      &tutor.ID,
		Student:      student,
		Tutor:        tutor,
		StartDate:    start,
		Availability: slots,
	}
}
