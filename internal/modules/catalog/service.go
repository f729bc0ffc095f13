package catalog

import (
	"context"
	"errors"
	"time"

	"sibiria/internal/domain"

	"gorm.io/gorm"
)

type Service struct {
	rooms     RoomRepository
	roomTypes RoomTypeRepository
	services  ServiceRepository
	bookings  BookingReader
}

func NewService(rooms RoomRepository, roomTypes RoomTypeRepository, services ServiceRepository, bookings BookingReader) *Service {
	return &Service{
		rooms:     rooms,
		roomTypes: roomTypes,
		services:  services,
		bookings:  bookings,
	}
}

// FindAvailable returns rooms that fit the party and have no Confirmed
// booking overlapping [checkIn, checkOut). Pending, Cancelled and
// WaitingConfirmation bookings never block a room.
func (s *Service) FindAvailable(ctx context.Context, checkIn, checkOut time.Time, roomTypeID *int64, guests int) ([]domain.Room, error) {
	if !checkIn.Before(checkOut) {
		return nil, ErrValidation
	}
	if guests < 1 {
		return nil, ErrValidation
	}

	candidates, err := s.rooms.FindCandidates(ctx, guests, roomTypeID)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return []domain.Room{}, nil
	}

	roomIDs := make([]int64, 0, len(candidates))
	for _, r := range candidates {
		roomIDs = append(roomIDs, r.ID)
	}
	confirmed, err := s.bookings.GetConfirmedByRoomIDs(ctx, roomIDs)
	if err != nil {
		return nil, err
	}

	blocked := make(map[int64]bool)
	for _, b := range confirmed {
		if domain.Overlaps(b.CheckIn, b.CheckOut, checkIn, checkOut) {
			blocked[b.RoomID] = true
		}
	}

	out := make([]domain.Room, 0, len(candidates))
	for _, r := range candidates {
		if !blocked[r.ID] {
			out = append(out, r)
		}
	}
	return out, nil
}

// Rooms are always created Available regardless of what the request
// carries.
func (s *Service) CreateRoom(ctx context.Context, req CreateRoomRequest) (*domain.Room, error) {
	room := &domain.Room{
		RoomTypeID:  req.RoomTypeID,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Capacity:    req.Capacity,
		Amenities:   req.Amenities,
		ImageURLs:   req.ImageURLs,
		Status:      domain.RoomAvailable,
	}
	if err := s.rooms.Create(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *Service) GetRoom(ctx context.Context, id int64) (*domain.Room, error) {
	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return room, nil
}

func (s *Service) ListRooms(ctx context.Context) ([]domain.Room, error) {
	return s.rooms.GetAll(ctx)
}

// UpdateRoom rewrites every room field and resets the status to
// Available. A missing id succeeds without touching anything.
func (s *Service) UpdateRoom(ctx context.Context, id int64, req UpdateRoomRequest) error {
	room := &domain.Room{
		ID:          id,
		RoomTypeID:  req.RoomTypeID,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Capacity:    req.Capacity,
		Amenities:   req.Amenities,
		ImageURLs:   req.ImageURLs,
		Status:      domain.RoomAvailable,
	}
	return s.rooms.Update(ctx, room)
}

// DeleteRoom removes the room together with its bookings; a missing id
// succeeds.
func (s *Service) DeleteRoom(ctx context.Context, id int64) error {
	return s.rooms.Delete(ctx, id)
}

func (s *Service) CreateRoomType(ctx context.Context, req CreateRoomTypeRequest) (*domain.RoomType, error) {
	rt := &domain.RoomType{Name: req.Name, Description: req.Description}
	if err := s.roomTypes.Create(ctx, rt); err != nil {
		return nil, err
	}
	return rt, nil
}

func (s *Service) ListRoomTypes(ctx context.Context) ([]domain.RoomType, error) {
	return s.roomTypes.GetAll(ctx)
}

func (s *Service) CreateService(ctx context.Context, req CreateServiceRequest) (*domain.Service, error) {
	svc := &domain.Service{Name: req.Name, Description: req.Description, Price: req.Price}
	if err := s.services.Create(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *Service) GetService(ctx context.Context, id int64) (*domain.Service, error) {
	svc, err := s.services.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return svc, nil
}

func (s *Service) ListServices(ctx context.Context) ([]domain.Service, error) {
	return s.services.GetAll(ctx)
}

// UpdateService reports a missing id as ErrNotFound, unlike the room
// update.
func (s *Service) UpdateService(ctx context.Context, id int64, req UpdateServiceRequest) error {
	svc := &domain.Service{ID: id, Name: req.Name, Description: req.Description, Price: req.Price}
	err := s.services.Update(ctx, svc)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *Service) DeleteService(ctx context.Context, id int64) error {
	return s.services.Delete(ctx, id)
}
