package content

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/mintfeed/mintfeed/internal/models"
	"github.com/mintfeed/mintfeed/internal/storage"
)

// CreateRequest describes one piece of content to mint. Image bytes are
// optional; when present they are pinned before minting.
type CreateRequest struct {
	Kind       models.ContentKind `json:"kind"`
	Content    string             `json:"content"`
	Username   string             `json:"username"`
	Bio        string             `json:"bio"`
	ParentPost string             `json:"parentPost"`
	Image      []byte             `json:"-"`
	ImageMime  string             `json:"-"`
}

// Validate enforces the per-kind field rules before any collaborator is
// touched.
func (r CreateRequest) Validate() error {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.Kind, validation.Required, validation.By(validKind)),
		validation.Field(&r.Content,
			validation.Required.When(r.Kind == models.KindPost || r.Kind == models.KindReply),
			validation.Length(0, models.MaxContentLength),
		),
		validation.Field(&r.Username, validation.Required.When(r.Kind == models.KindProfile)),
		validation.Field(&r.ParentPost, validation.Required.When(r.Kind == models.KindReply)),
		validation.Field(&r.ImageMime, validation.Required.When(len(r.Image) > 0), validation.By(validMime(len(r.Image)))),
	)
	if err != nil {
		return err
	}
	if len(r.Image) > storage.MaxImageBytes {
		return validation.NewError("validation_image_too_large", "image exceeds the 5MB limit")
	}
	return nil
}

func validKind(value any) error {
	kind, _ := value.(models.ContentKind)
	if !kind.Valid() {
		return validation.NewError("validation_kind", "kind must be profile, post, or reply")
	}
	return nil
}

func validMime(imageLen int) validation.RuleFunc {
	return func(value any) error {
		mime, _ := value.(string)
		if imageLen == 0 && mime == "" {
			return nil
		}
		if _, ok := storage.AllowedMimeTypes[mime]; !ok {
			return validation.NewError("validation_image_mime", "image must be jpeg, png, or gif")
		}
		return nil
	}
}
