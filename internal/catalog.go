package internal

import (
	"context"
	"fmt"
	"hotelbooking/entity"
	"hotelbooking/services"
	"io"
	"strings"
	"time"
)

// Catalog manages room types, rooms and their images.
type Catalog struct {
	database   services.Database
	uploader   services.Uploader
	extensions []string
	logger     services.LogHandler
}

func NewCatalog(database services.Database, uploader services.Uploader, extensions []string) *Catalog {
	return &Catalog{
		database:   database,
		uploader:   uploader,
		extensions: extensions,
		logger:     discard,
	}
}

func (c *Catalog) SetLogger(logger services.LogHandler) {
	c.logger = logger
}

func (c *Catalog) RoomTypes(ctx context.Context) ([]*entity.RoomType, error) {
	return c.database.GetRoomTypes(ctx)
}

func (c *Catalog) AddRoomType(ctx context.Context, roomType *entity.RoomType) (string, error) {
	roomType.Name = strings.TrimSpace(roomType.Name)
	if roomType.Name == "" {
		return "", fmt.Errorf("%w: room type name is required", ErrInvalidInput)
	}
	if roomType.Price < 0 {
		return "", fmt.Errorf("%w: negative price", ErrInvalidInput)
	}
	return c.database.CreateRoomType(ctx, roomType)
}

func (c *Catalog) Rooms(ctx context.Context) ([]*entity.Room, error) {
	return c.database.GetRooms(ctx)
}

// AddRoom creates an available room priced from its room type. An image with
// a disallowed extension is ignored and the room is created without it.
func (c *Catalog) AddRoom(ctx context.Context, room *entity.Room, filename string, image io.Reader) (string, error) {
	room.RoomTypeId = strings.TrimSpace(room.RoomTypeId)
	if room.RoomTypeId == "" {
		return "", fmt.Errorf("%w: room type is not selected", ErrInvalidInput)
	}
	roomType, err := c.database.GetRoomType(ctx, room.RoomTypeId)
	if err != nil {
		return "", fmt.Errorf("get room type: %w", err)
	}
	if roomType == nil {
		return "", fmt.Errorf("%w: unknown room type %s", ErrInvalidInput, room.RoomTypeId)
	}

	room.Price = roomType.Price
	room.Status = entity.RoomAvailable
	room.CreatedAt = time.Now()
	id, err := c.database.CreateRoom(ctx, room)
	if err != nil {
		return "", fmt.Errorf("create room: %w", err)
	}

	if image == nil {
		return id, nil
	}
	if !allowedFile(filename, c.extensions) {
		c.logger.Warn(fmt.Sprintf("room %s: image %s ignored", id, filename))
		return id, nil
	}

	url, err := c.uploader.Upload(ctx, "room_"+secureFilename(filename), image)
	if err != nil {
		return id, fmt.Errorf("upload room image: %w", err)
	}
	roomImage := &entity.RoomImage{
		RoomId:     id,
		Url:        url,
		UploadedAt: time.Now(),
	}
	if _, err = c.database.CreateRoomImage(ctx, roomImage); err != nil {
		return id, fmt.Errorf("create room image: %w", err)
	}
	if err = c.database.UpdateRoomImage(ctx, id, url); err != nil {
		return id, fmt.Errorf("update room image: %w", err)
	}
	room.ImageUrl = url
	return id, nil
}

func (c *Catalog) Image(ctx context.Context, id string, w io.Writer) error {
	return c.uploader.Download(ctx, id, w)
}
