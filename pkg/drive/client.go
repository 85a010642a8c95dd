// Package drive is a thin client for the Google Drive v3 REST API, covering
// the listing, metadata, content streaming, and mutation calls the gallery
// needs. Authentication is the caller's concern: the injected http.Client is
// expected to attach credentials itself (an oauth2 service-account client
// refreshes its token internally).
package drive

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"
)

const (
	defaultBaseURL      = "https://www.googleapis.com/drive/v3"
	defaultUploadURL    = "https://www.googleapis.com/upload/drive/v3"
	defaultThumbnailURL = "https://drive.google.com/thumbnail"

	fileFields = "id,name,mimeType,createdTime,thumbnailLink,appProperties"

	// maxPageSize is the Drive API's listing page cap.
	maxPageSize = 1000
)

type Client struct {
	httpClient   *http.Client
	baseURL      string
	uploadURL    string
	thumbnailURL string
}

// NewClient wraps an authenticated http.Client in a Drive API client.
func NewClient(httpClient *http.Client) *Client {
	return &Client{
		httpClient:   httpClient,
		baseURL:      defaultBaseURL,
		uploadURL:    defaultUploadURL,
		thumbnailURL: defaultThumbnailURL,
	}
}

// ListQuery selects the children of a parent folder. FoldersOnly and
// ImagesOnly narrow the listing by mime type; PageSize caps the result to a
// single page of that size (0 means follow pagination and return everything).
type ListQuery struct {
	ParentID    string
	FoldersOnly bool
	ImagesOnly  bool
	PageSize    int
	OrderBy     string
}

func (q ListQuery) encode() string {
	clauses := []string{fmt.Sprintf("'%s' in parents", q.ParentID)}
	if q.FoldersOnly {
		clauses = append(clauses, fmt.Sprintf("mimeType='%s'", FolderMimeType))
	}
	if q.ImagesOnly {
		clauses = append(clauses, "mimeType contains 'image/'")
	}
	return strings.Join(clauses, " and ")
}

// List returns the children of a folder selected by q. Listings are a
// point-in-time snapshot; order is only as stable as the backing API makes
// it.
func (c *Client) List(ctx context.Context, q ListQuery) ([]*File, error) {
	var files []*File
	pageToken := ""

	for {
		params := url.Values{}
		params.Set("q", q.encode())
		params.Set("fields", "nextPageToken,files("+fileFields+")")
		if q.OrderBy != "" {
			params.Set("orderBy", q.OrderBy)
		}
		pageSize := maxPageSize
		if q.PageSize > 0 {
			pageSize = q.PageSize
		}
		params.Set("pageSize", strconv.Itoa(pageSize))
		if pageToken != "" {
			params.Set("pageToken", pageToken)
		}

		var page listResponse
		if err := c.getJSON(ctx, c.baseURL+"/files?"+params.Encode(), &page); err != nil {
			return nil, err
		}
		files = append(files, page.Files...)

		if q.PageSize > 0 || page.NextPageToken == "" {
			return files, nil
		}
		pageToken = page.NextPageToken
	}
}

// Get returns the metadata of a single file.
func (c *Client) Get(ctx context.Context, id string) (*File, error) {
	file := &File{}
	u := fmt.Sprintf("%s/files/%s?fields=%s", c.baseURL, url.PathEscape(id), url.QueryEscape(fileFields))
	if err := c.getJSON(ctx, u, file); err != nil {
		return nil, err
	}
	return file, nil
}

// Content opens a streamed read of the file's full-resolution bytes. The
// caller owns the returned ReadCloser.
func (c *Client) Content(ctx context.Context, id string) (io.ReadCloser, error) {
	u := fmt.Sprintf("%s/files/%s?alt=media", c.baseURL, url.PathEscape(id))
	return c.getStream(ctx, u)
}

// Thumbnail opens a streamed read of a resized rendition via Drive's
// thumbnail endpoint. size uses Drive's sz syntax, e.g. "w400" or
// "w400-h400". It returns the stream and its content type.
func (c *Client) Thumbnail(ctx context.Context, id, size string) (io.ReadCloser, string, error) {
	u := fmt.Sprintf("%s?id=%s&sz=%s", c.thumbnailURL, url.QueryEscape(id), url.QueryEscape(size))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, "", errors.WithStack(err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", errors.WithStack(err)
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		return nil, "", c.apiError(resp)
	}
	return resp.Body, resp.Header.Get("Content-Type"), nil
}

// CreateFolder creates a folder under parentID.
func (c *Client) CreateFolder(ctx context.Context, parentID, name string) (*File, error) {
	body := map[string]interface{}{
		"name":     name,
		"mimeType": FolderMimeType,
		"parents":  []string{parentID},
	}
	u := fmt.Sprintf("%s/files?fields=%s", c.baseURL, url.QueryEscape(fileFields))
	return c.doJSON(ctx, http.MethodPost, u, body)
}

// Upload streams content into a new file under parentID using a
// multipart/related upload, so large files never sit fully in memory.
func (c *Client) Upload(ctx context.Context, parentID, name, mimeType string, content io.Reader) (*File, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		err := writeUploadBody(mw, parentID, name, mimeType, content)
		pw.CloseWithError(err)
	}()

	u := fmt.Sprintf("%s/files?uploadType=multipart&fields=%s", c.uploadURL, url.QueryEscape(fileFields))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, pr)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "multipart/related; boundary="+mw.Boundary())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, c.apiError(resp)
	}

	file := &File{}
	if err := json.NewDecoder(resp.Body).Decode(file); err != nil {
		return nil, errors.WithStack(err)
	}
	return file, nil
}

func writeUploadBody(mw *multipart.Writer, parentID, name, mimeType string, content io.Reader) error {
	metaHeader := textproto.MIMEHeader{}
	metaHeader.Set("Content-Type", "application/json; charset=UTF-8")
	meta, err := mw.CreatePart(metaHeader)
	if err != nil {
		return err
	}
	err = json.NewEncoder(meta).Encode(map[string]interface{}{
		"name":    name,
		"parents": []string{parentID},
	})
	if err != nil {
		return err
	}

	mediaHeader := textproto.MIMEHeader{}
	if mimeType != "" {
		mediaHeader.Set("Content-Type", mimeType)
	}
	media, err := mw.CreatePart(mediaHeader)
	if err != nil {
		return err
	}
	if _, err := io.Copy(media, content); err != nil {
		return err
	}
	return mw.Close()
}

// Update patches a file's metadata. Only non-zero fields of meta are sent.
func (c *Client) Update(ctx context.Context, id string, meta UpdateMetadata) (*File, error) {
	u := fmt.Sprintf("%s/files/%s?fields=%s", c.baseURL, url.PathEscape(id), url.QueryEscape(fileFields))
	return c.doJSON(ctx, http.MethodPatch, u, meta)
}

// Delete permanently removes a file or folder (and, for folders, everything
// underneath).
func (c *Client) Delete(ctx context.Context, id string) error {
	u := fmt.Sprintf("%s/files/%s", c.baseURL, url.PathEscape(id))
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, u, nil)
	if err != nil {
		return errors.WithStack(err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.WithStack(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return c.apiError(resp)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, u string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return errors.WithStack(err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.WithStack(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return c.apiError(resp)
	}
	return errors.WithStack(json.NewDecoder(resp.Body).Decode(out))
}

func (c *Client) doJSON(ctx context.Context, method, u string, body interface{}) (*File, error) {
	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, strings.NewReader(string(encoded)))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, c.apiError(resp)
	}

	file := &File{}
	if err := json.NewDecoder(resp.Body).Decode(file); err != nil {
		return nil, errors.WithStack(err)
	}
	return file, nil
}

func (c *Client) getStream(ctx context.Context, u string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		return nil, c.apiError(resp)
	}
	return resp.Body, nil
}

// apiError decodes a Drive error payload, falling back to the raw body when
// it isn't the usual shape.
func (c *Client) apiError(resp *http.Response) error {
	body, err := io.ReadAll(io.LimitReader(resp.Body, 8192))
	if err != nil {
		return &Error{StatusCode: resp.StatusCode}
	}

	var payload struct {
		Error struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
			Status  string `json:"status"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.Error.Code == 0 {
		return &Error{StatusCode: resp.StatusCode, Message: string(body)}
	}

	return &Error{
		StatusCode: resp.StatusCode,
		Status:     payload.Error.Status,
		Message:    payload.Error.Message,
	}
}
