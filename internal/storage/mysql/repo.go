package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	drv "github.com/go-sql-driver/mysql"

	"hotel_booking/internal/domain"
)

const errDupEntry = 1062

// jsonList marshals a string list for a JSON column; nil is stored as [].
func jsonList(s []string) (string, error) {
	if s == nil {
		s = []string{}
	}
	b, err := json.Marshal(s)
	return string(b), err
}

type scanner interface {
	Scan(dest ...any) error
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) InsertHotel(ctx context.Context, h domain.Hotel) error {
	fac, err := jsonList(h.Facilities)
	if err != nil {
		return err
	}
	imgs, err := jsonList(h.ImageURLs)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, insertHotelSQL,
		h.ID,
		h.UserID,
		h.Name,
		h.City,
		h.Country,
		h.Description,
		h.Type,
		h.PricePerNight,
		fac,
		imgs,
		h.LastUpdated,
	)
	return err
}

func (r *Repo) UpdateHotel(ctx context.Context, h domain.Hotel) (domain.Hotel, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Hotel{}, err
	}
	defer func() { _ = tx.Rollback() }()

	var storedImgs []byte
	if err := tx.QueryRowContext(ctx, lockHotelSQL, h.ID, h.UserID).Scan(&storedImgs); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Hotel{}, domain.ErrNotFound
		}
		return domain.Hotel{}, err
	}
	if h.ImageURLs == nil {
		h.ImageURLs = []string{}
		if err := json.Unmarshal(storedImgs, &h.ImageURLs); err != nil {
			return domain.Hotel{}, fmt.Errorf("decode stored image_urls: %w", err)
		}
	}

	fac, err := jsonList(h.Facilities)
	if err != nil {
		return domain.Hotel{}, err
	}
	imgs, err := jsonList(h.ImageURLs)
	if err != nil {
		return domain.Hotel{}, err
	}
	if _, err := tx.ExecContext(ctx, updateHotelSQL,
		h.Name,
		h.City,
		h.Country,
		h.Description,
		h.Type,
		h.PricePerNight,
		fac,
		imgs,
		h.LastUpdated,
		h.ID,
		h.UserID,
	); err != nil {
		return domain.Hotel{}, err
	}
	if err := tx.Commit(); err != nil {
		return domain.Hotel{}, err
	}
	return h, nil
}

func (r *Repo) SetImageURLs(ctx context.Context, id, owner string, urls []string) error {
	imgs, err := jsonList(urls)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, setImageURLsSQL, imgs, id, owner)
	return err
}

func (r *Repo) GetHotel(ctx context.Context, id, owner string) (domain.Hotel, error) {
	h, err := scanHotel(r.db.QueryRowContext(ctx, getHotelSQL, id, owner))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Hotel{}, domain.ErrNotFound
	}
	return h, err
}

func (r *Repo) ListHotels(ctx context.Context, owner string) ([]domain.Hotel, error) {
	rows, err := r.db.QueryContext(ctx, listHotelsSQL, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Hotel{}
	for rows.Next() {
		h, err := scanHotel(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanHotel(s scanner) (domain.Hotel, error) {
	var h domain.Hotel
	var facJSON, imgJSON []byte
	if err := s.Scan(
		&h.ID,
		&h.UserID,
		&h.Name,
		&h.City,
		&h.Country,
		&h.Description,
		&h.Type,
		&h.PricePerNight,
		&facJSON,
		&imgJSON,
		&h.LastUpdated,
	); err != nil {
		return domain.Hotel{}, err
	}
	h.Facilities = []string{}
	h.ImageURLs = []string{}
	if err := json.Unmarshal(facJSON, &h.Facilities); err != nil {
		return domain.Hotel{}, fmt.Errorf("decode facilities: %w", err)
	}
	if err := json.Unmarshal(imgJSON, &h.ImageURLs); err != nil {
		return domain.Hotel{}, fmt.Errorf("decode image_urls: %w", err)
	}
	h.LastUpdated = h.LastUpdated.UTC()
	return h, nil
}

func (r *Repo) InsertUser(ctx context.Context, u domain.User) error {
	_, err := r.db.ExecContext(ctx, insertUserSQL,
		u.ID, u.Email, u.PasswordHash, u.FirstName, u.LastName, u.CreatedAt)
	var me *drv.MySQLError
	if errors.As(err, &me) && me.Number == errDupEntry {
		return domain.ErrConflict
	}
	return err
}

func (r *Repo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, getUserByEmailSQL, email))
}

func (r *Repo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, getUserByIDSQL, id))
}

func scanUser(s scanner) (domain.User, error) {
	var u domain.User
	err := s.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.User{}, err
	}
	u.CreatedAt = u.CreatedAt.UTC()
	return u, nil
}
