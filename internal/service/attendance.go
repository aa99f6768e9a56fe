package service

import (
	"context"
	"fmt"

	"atelier/internal/models"
	"atelier/internal/repository"
)

type AttendanceService struct {
	attendanceRepo *repository.AttendanceRepository
	bookingRepo    *repository.BookingRepository
}

func NewAttendanceService(attendanceRepo *repository.AttendanceRepository, bookingRepo *repository.BookingRepository) *AttendanceService {
	return &AttendanceService{
		attendanceRepo: attendanceRepo,
		bookingRepo:    bookingRepo,
	}
}

func (s *AttendanceService) List(ctx context.Context, eventID int64, page, pageSize int) ([]models.AttendanceRecord, error) {
	records, err := s.attendanceRepo.List(ctx, eventID, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	return records, nil
}

func (s *AttendanceService) Stats(ctx context.Context) ([]models.AttendanceStatsItem, error) {
	stats, err := s.attendanceRepo.StatsByEvent(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load attendance stats: %w", err)
	}
	return stats, nil
}

// BookingDetail resolves a booking by code for the admin surface, together
// with its attendance record if the code has been validated.
func (s *AttendanceService) BookingDetail(ctx context.Context, code string) (*models.BookingDetailResponse, error) {
	normalized := models.NormalizeCode(code)

	booking, err := s.bookingRepo.GetByCode(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	if booking == nil {
		return nil, nil
	}

	record, err := s.attendanceRepo.GetByBookingCode(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance record: %w", err)
	}

	return &models.BookingDetailResponse{
		Booking:    booking,
		Attendance: record,
	}, nil
}

func (s *AttendanceService) ListBookings(ctx context.Context, paymentStatus string, page, pageSize int) ([]models.ListBookingsResponseItem, error) {
	bookings, err := s.bookingRepo.List(ctx, paymentStatus, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}
