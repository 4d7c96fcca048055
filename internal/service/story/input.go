package story

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/storyline-backend/internal/adapter/blob"
	"github.com/heartmarshall/storyline-backend/internal/domain"
)

const (
	maxTitleLen = 200
	maxTags     = 20
	maxTagLen   = 50
	maxHeading  = 500
)

// FileInput is either a new upload (Data set) or a reference to a blob that
// is already stored (Key set).
type FileInput struct {
	Name     string
	MimeType string
	Data     []byte
	Key      string
}

// SnapshotInput holds one section of a story.
type SnapshotInput struct {
	Heading string
	Content string
	Files   []FileInput
}

// CreateInput holds the parameters for a new story.
type CreateInput struct {
	Title     string
	Tags      []string
	Snapshots []SnapshotInput
}

func (i *CreateInput) normalize() {
	i.Title = domain.NormalizeTitle(i.Title)
	i.Tags = domain.NormalizeTags(i.Tags)
	normalizeSnapshots(i.Snapshots)
}

// validateCreate checks all fields and collects all errors.
func (s *Service) validateCreate(i CreateInput) error {
	var errs []domain.FieldError
	errs = append(errs, validateTitle(i.Title)...)
	errs = append(errs, validateTags(i.Tags)...)
	errs = append(errs, s.validateSnapshots(i.Snapshots)...)

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// EditInput holds a replacement for a story's content. A nil or blank Title
// and unset Tags keep the current values; Snapshots always replace the list.
type EditInput struct {
	Title     *string
	Tags      []string
	TagsSet   bool
	Snapshots []SnapshotInput
}

func (i *EditInput) normalize() {
	if i.Title != nil {
		t := domain.NormalizeTitle(*i.Title)
		i.Title = &t
		if t == "" {
			i.Title = nil
		}
	}
	if i.TagsSet {
		i.Tags = domain.NormalizeTags(i.Tags)
	}
	normalizeSnapshots(i.Snapshots)
}

func normalizeSnapshots(snaps []SnapshotInput) {
	for i := range snaps {
		snaps[i].Heading = strings.TrimSpace(snaps[i].Heading)
		if strings.TrimSpace(snaps[i].Content) == "" {
			snaps[i].Content = ""
		}
		for j := range snaps[i].Files {
			f := &snaps[i].Files[j]
			f.Name = strings.TrimSpace(f.Name)
			f.MimeType = strings.ToLower(strings.TrimSpace(f.MimeType))
		}
	}
}

// validateEdit checks all fields and collects all errors.
func (s *Service) validateEdit(i EditInput) error {
	var errs []domain.FieldError
	if i.Title != nil {
		errs = append(errs, validateTitle(*i.Title)...)
	}
	if i.TagsSet {
		errs = append(errs, validateTags(i.Tags)...)
	}
	errs = append(errs, s.validateSnapshots(i.Snapshots)...)

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func validateTitle(title string) []domain.FieldError {
	switch {
	case title == "":
		return []domain.FieldError{{Field: "title", Message: "required"}}
	case utf8.RuneCountInString(title) > maxTitleLen:
		return []domain.FieldError{{Field: "title", Message: fmt.Sprintf("too long (max %d)", maxTitleLen)}}
	}
	return nil
}

func validateTags(tags []string) []domain.FieldError {
	var errs []domain.FieldError
	if len(tags) > maxTags {
		errs = append(errs, domain.FieldError{Field: "tags", Message: fmt.Sprintf("too many (max %d)", maxTags)})
	}
	for ti, t := range tags {
		if utf8.RuneCountInString(t) > maxTagLen {
			errs = append(errs, domain.FieldError{
				Field:   "tags[" + strconv.Itoa(ti) + "]",
				Message: fmt.Sprintf("too long (max %d)", maxTagLen),
			})
		}
	}
	return errs
}

func (s *Service) validateSnapshots(snaps []SnapshotInput) []domain.FieldError {
	var errs []domain.FieldError
	for si, snap := range snaps {
		if snap.Heading == "" {
			errs = append(errs, domain.FieldError{Field: fieldIndex(si, "heading"), Message: "required"})
		} else if utf8.RuneCountInString(snap.Heading) > maxHeading {
			errs = append(errs, domain.FieldError{Field: fieldIndex(si, "heading"), Message: fmt.Sprintf("too long (max %d)", maxHeading)})
		}
		if snap.Content == "" {
			errs = append(errs, domain.FieldError{Field: fieldIndex(si, "content"), Message: "required"})
		}
		if len(snap.Files) > domain.MaxFilesPerSnapshot {
			errs = append(errs, domain.FieldError{
				Field:   fieldIndex(si, "files"),
				Message: fmt.Sprintf("too many (max %d)", domain.MaxFilesPerSnapshot),
			})
			continue
		}
		for fi, f := range snap.Files {
			errs = append(errs, s.validateFile(fieldIndex(si, "files")+"["+strconv.Itoa(fi)+"]", f)...)
		}
	}
	return errs
}

func (s *Service) validateFile(field string, f FileInput) []domain.FieldError {
	var errs []domain.FieldError
	if _, ok := s.allowed[f.MimeType]; !ok {
		errs = append(errs, domain.FieldError{Field: field + ".mimeType", Message: "unsupported image type"})
	}
	switch {
	case len(f.Data) > 0:
		if s.cfg.MaxFileBytes > 0 && int64(len(f.Data)) > s.cfg.MaxFileBytes {
			errs = append(errs, domain.FieldError{Field: field, Message: fmt.Sprintf("too large (max %d bytes)", s.cfg.MaxFileBytes)})
		}
	case f.Key != "":
		if !blob.ValidKey(f.Key) {
			errs = append(errs, domain.FieldError{Field: field + ".key", Message: "invalid"})
		}
	default:
		errs = append(errs, domain.FieldError{Field: field, Message: "empty file"})
	}
	return errs
}

func fieldIndex(i int, field string) string {
	return "snapshots[" + strconv.Itoa(i) + "]." + field
}
