package byteservice

import (
	"context"
	"database/sql"
	"strings"

	"github.com/sushihentaime/folio/internal/common"
)

func NewByteService(db *sql.DB) *ByteService {
	return &ByteService{m: newByteModel(db)}
}

func (s *ByteService) CreateByte(ctx context.Context, req *CreateByteRequest) (*Byte, error) {
	b := &Byte{
		Headline: strings.TrimSpace(req.Headline),
		Body:     strings.TrimSpace(req.Body),
		ImageURL: strings.TrimSpace(req.ImageURL),
		LinkURL:  strings.TrimSpace(req.LinkURL),
		UserID:   req.UserID,
	}

	v := common.NewValidator()
	validateByte(v, b)
	common.ValidateID(v, b.UserID, "user_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	err := s.m.insert(ctx, b)
	if err != nil {
		return nil, err
	}

	return b, nil
}

func (s *ByteService) GetByte(ctx context.Context, id int) (*Byte, error) {
	v := common.NewValidator()
	common.ValidateID(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getByteById(ctx, id)
}

// UpdateByte applies a partial update; nil fields are left unchanged.
func (s *ByteService) UpdateByte(ctx context.Context, id int, req *UpdateByteRequest) (*Byte, error) {
	b, err := s.GetByte(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Version != nil && *req.Version != b.Version {
		return nil, common.ErrEditConflict
	}

	if req.Headline != nil {
		b.Headline = strings.TrimSpace(*req.Headline)
	}
	if req.Body != nil {
		b.Body = strings.TrimSpace(*req.Body)
	}
	if req.ImageURL != nil {
		b.ImageURL = strings.TrimSpace(*req.ImageURL)
	}
	if req.LinkURL != nil {
		b.LinkURL = strings.TrimSpace(*req.LinkURL)
	}

	v := common.NewValidator()
	validateByte(v, b)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	err = s.m.update(ctx, b)
	if err != nil {
		return nil, err
	}

	return b, nil
}

func (s *ByteService) DeleteByte(ctx context.Context, id int) error {
	v := common.NewValidator()
	common.ValidateID(v, id, "id")
	if !v.Valid() {
		return v.ValidationError()
	}

	return s.m.delete(ctx, id)
}

func (s *ByteService) GetBytes(ctx context.Context, p common.Pagination) ([]Byte, common.Metadata, error) {
	bytes, total, err := s.m.list(ctx, "", p)
	if err != nil {
		return nil, common.Metadata{}, err
	}

	return bytes, p.Metadata(total), nil
}

// SearchBytes matches bytes whose headline or body contains q.
func (s *ByteService) SearchBytes(ctx context.Context, q string, p common.Pagination) ([]Byte, common.Metadata, error) {
	v := common.NewValidator()
	v.Check(strings.TrimSpace(q) != "", "q", "must be provided")
	v.Check(v.CheckStringLength(q, 0, 100), "q", "must not be more than 100 characters long")
	if !v.Valid() {
		return nil, common.Metadata{}, v.ValidationError()
	}

	bytes, total, err := s.m.list(ctx, common.ContainsPattern(q), p)
	if err != nil {
		return nil, common.Metadata{}, err
	}

	return bytes, p.Metadata(total), nil
}
