package rest

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/heartmarshall/storyline-backend/internal/domain"
	"github.com/heartmarshall/storyline-backend/internal/service/story"
)

// multipartMemory is how much of a multipart body is buffered in memory
// before parts spill to temporary files.
const multipartMemory = 32 << 20

var (
	indexedField = regexp.MustCompile(`^snapshots\[(\d+)\]\[(heading|content)\]$`)
	indexedFile  = regexp.MustCompile(`^snapshots\[(\d+)\]\[files\](?:\[(\d*)\])?`)
)

// storyForm is the transport-neutral content of a create or edit request.
type storyForm struct {
	Title     *string
	Tags      []string
	TagsSet   bool
	Snapshots []story.SnapshotInput
}

func (f storyForm) createInput() story.CreateInput {
	in := story.CreateInput{Tags: f.Tags, Snapshots: f.Snapshots}
	if f.Title != nil {
		in.Title = *f.Title
	}
	return in
}

func (f storyForm) editInput() story.EditInput {
	return story.EditInput{Title: f.Title, Tags: f.Tags, TagsSet: f.TagsSet, Snapshots: f.Snapshots}
}

type storyRequest struct {
	Title     *string           `json:"title"`
	Tags      json.RawMessage   `json:"tags"`
	Snapshots []snapshotRequest `json:"snapshots"`
}

type snapshotRequest struct {
	Heading string        `json:"heading"`
	Content string        `json:"content"`
	Files   []fileRequest `json:"files"`
}

// fileRequest references a stored blob by Key or carries base64 ImageData.
// ImageType is accepted as an alias of MimeType.
type fileRequest struct {
	Name      string `json:"name"`
	MimeType  string `json:"mimeType"`
	ImageType string `json:"imageType"`
	Key       string `json:"key"`
	ImageData string `json:"imageData"`
}

// parseStoryForm reads a story body encoded either as multipart/form-data
// or as JSON. Decoding problems are reported as validation errors.
func parseStoryForm(r *http.Request) (storyForm, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		return parseMultipart(r)
	}
	return parseJSON(r.Body)
}

func parseJSON(body io.Reader) (storyForm, error) {
	var req storyRequest
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		if tooLarge(err) {
			return storyForm{}, err
		}
		return storyForm{}, domain.NewValidationError("body", "invalid JSON")
	}

	form := storyForm{Title: req.Title}
	tags, set, err := parseJSONTags(req.Tags)
	if err != nil {
		return storyForm{}, err
	}
	form.Tags, form.TagsSet = tags, set

	snaps, err := snapshotsFromRequest(req.Snapshots)
	if err != nil {
		return storyForm{}, err
	}
	form.Snapshots = snaps
	return form, nil
}

// parseJSONTags accepts an array of strings or a comma-separated string. An
// explicit array replaces the tags even when empty; a blank string does not.
func parseJSONTags(raw json.RawMessage) ([]string, bool, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, false, nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return splitTags(list), true, nil
	}
	var joined string
	if err := json.Unmarshal(raw, &joined); err == nil {
		tags := splitTags([]string{joined})
		return tags, len(tags) > 0, nil
	}
	return nil, false, domain.NewValidationError("tags", "must be a list of strings")
}

func splitTags(values []string) []string {
	out := []string{}
	for _, v := range values {
		for _, t := range strings.Split(v, ",") {
			if t = strings.TrimSpace(t); t != "" {
				out = append(out, t)
			}
		}
	}
	return out
}

func snapshotsFromRequest(reqs []snapshotRequest) ([]story.SnapshotInput, error) {
	snaps := make([]story.SnapshotInput, len(reqs))
	var errs []domain.FieldError
	for i, sr := range reqs {
		snaps[i] = story.SnapshotInput{Heading: sr.Heading, Content: sr.Content}
		for j, fr := range sr.Files {
			f, err := fileFromRequest(fr)
			if err != nil {
				errs = append(errs, domain.FieldError{
					Field:   fmt.Sprintf("snapshots[%d].files[%d].imageData", i, j),
					Message: err.Error(),
				})
				continue
			}
			snaps[i].Files = append(snaps[i].Files, f)
		}
	}
	if len(errs) > 0 {
		return nil, domain.NewValidationErrors(errs)
	}
	return snaps, nil
}

func fileFromRequest(fr fileRequest) (story.FileInput, error) {
	f := story.FileInput{Name: fr.Name, MimeType: fr.MimeType, Key: fr.Key}
	if f.MimeType == "" {
		f.MimeType = fr.ImageType
	}
	if fr.Key != "" || fr.ImageData == "" {
		return f, nil
	}

	payload := fr.ImageData
	// Data URIs ("data:image/png;base64,...") carry their own media type.
	if rest, ok := strings.CutPrefix(payload, "data:"); ok {
		meta, data, found := strings.Cut(rest, ",")
		if !found || !strings.HasSuffix(meta, ";base64") {
			return f, errors.New("unsupported data URI")
		}
		if f.MimeType == "" {
			f.MimeType = strings.TrimSuffix(meta, ";base64")
		}
		payload = data
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return f, errors.New("invalid base64")
	}
	f.Data = data
	return f, nil
}

func parseMultipart(r *http.Request) (storyForm, error) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		if tooLarge(err) {
			return storyForm{}, err
		}
		return storyForm{}, domain.NewValidationError("body", "invalid multipart form")
	}
	mf := r.MultipartForm
	defer mf.RemoveAll() //nolint:errcheck

	var form storyForm
	if v, ok := mf.Value["title"]; ok && len(v) > 0 {
		title := v[0]
		form.Title = &title
	}

	// A tags field left blank counts as omitted.
	var rawTags []string
	for _, key := range []string{"tags", "tags[]"} {
		rawTags = append(rawTags, mf.Value[key]...)
	}
	if tags := splitTags(rawTags); len(tags) > 0 {
		form.Tags, form.TagsSet = tags, true
	}

	snaps, err := multipartSnapshots(mf)
	if err != nil {
		return storyForm{}, err
	}
	if err := attachUploads(mf, snaps); err != nil {
		return storyForm{}, err
	}
	form.Snapshots = *snaps
	return form, nil
}

// multipartSnapshots reads either a JSON "snapshots" field or indexed
// snapshots[i][heading] / snapshots[i][content] fields.
func multipartSnapshots(mf *multipart.Form) (*[]story.SnapshotInput, error) {
	if v, ok := mf.Value["snapshots"]; ok && len(v) > 0 {
		var reqs []snapshotRequest
		if err := json.Unmarshal([]byte(v[0]), &reqs); err != nil {
			return nil, domain.NewValidationError("snapshots", "invalid JSON format")
		}
		snaps, err := snapshotsFromRequest(reqs)
		if err != nil {
			return nil, err
		}
		return &snaps, nil
	}

	snaps := []story.SnapshotInput{}
	for key, values := range mf.Value {
		m := indexedField.FindStringSubmatch(key)
		if m == nil || len(values) == 0 {
			continue
		}
		idx, err := snapshotIndex(m[1])
		if err != nil {
			return nil, err
		}
		snaps = grow(snaps, idx)
		if m[2] == "heading" {
			snaps[idx].Heading = values[0]
		} else {
			snaps[idx].Content = values[0]
		}
	}
	return &snaps, nil
}

type upload struct {
	snap, pos int
	header    *multipart.FileHeader
}

// attachUploads appends uploaded files to their snapshots, ordered by
// snapshot index, then explicit file index, then form order.
func attachUploads(mf *multipart.Form, snaps *[]story.SnapshotInput) error {
	var uploads []upload
	for key, headers := range mf.File {
		m := indexedFile.FindStringSubmatch(key)
		if m == nil {
			continue
		}
		idx, err := snapshotIndex(m[1])
		if err != nil {
			return err
		}
		pos := -1
		if m[2] != "" {
			pos, _ = strconv.Atoi(m[2])
		}
		for _, fh := range headers {
			uploads = append(uploads, upload{snap: idx, pos: pos, header: fh})
		}
	}
	slices.SortStableFunc(uploads, func(a, b upload) int {
		if a.snap != b.snap {
			return a.snap - b.snap
		}
		return a.pos - b.pos
	})

	for _, u := range uploads {
		data, err := readUpload(u.header)
		if err != nil {
			return err
		}
		*snaps = grow(*snaps, u.snap)
		(*snaps)[u.snap].Files = append((*snaps)[u.snap].Files, story.FileInput{
			Name:     u.header.Filename,
			MimeType: u.header.Header.Get("Content-Type"),
			Data:     data,
		})
	}
	return nil
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload %s: %w", fh.Filename, err)
	}
	defer f.Close()
	return io.ReadAll(f)
}

// maxSnapshotIndex bounds indexed form fields so a crafted key cannot force
// a huge allocation.
const maxSnapshotIndex = 1000

func snapshotIndex(s string) (int, error) {
	idx, err := strconv.Atoi(s)
	if err != nil || idx >= maxSnapshotIndex {
		return 0, domain.NewValidationError("snapshots", "snapshot index out of range")
	}
	return idx, nil
}

func grow(snaps []story.SnapshotInput, idx int) []story.SnapshotInput {
	for len(snaps) <= idx {
		snaps = append(snaps, story.SnapshotInput{})
	}
	return snaps
}

func tooLarge(err error) bool {
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe)
}
