package mediastore

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sevatrust/core/internal/config"
)

const defaultCloudinaryEndpoint = "https://api.cloudinary.com"

// cloudinaryStore talks to the Cloudinary REST API with hand-signed
// requests over net/http.
type cloudinaryStore struct {
	cloudName string
	apiKey    string
	apiSecret string
	endpoint  string
	client    *http.Client
}

func newCloudinaryStore(cfg config.CloudinaryConfig) *cloudinaryStore {
	return &cloudinaryStore{
		cloudName: strings.TrimSpace(cfg.CloudName),
		apiKey:    strings.TrimSpace(cfg.APIKey),
		apiSecret: strings.TrimSpace(cfg.APISecret),
		endpoint:  defaultCloudinaryEndpoint,
		client:    &http.Client{Timeout: 45 * time.Second},
	}
}

type cloudinaryUploadResult struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (s *cloudinaryStore) Upload(ctx context.Context, in UploadInput) (string, error) {
	params := map[string]string{
		"timestamp": strconv.FormatInt(time.Now().Unix(), 10),
	}
	if folder := strings.TrimSpace(in.Folder); folder != "" {
		params["folder"] = folder
	}
	if in.Resource == ResourceRaw {
		// Raw delivery defaults to attachment; keep PDFs viewable inline.
		params["type"] = "upload"
		params["flags"] = "attachment:inline"
	}
	params["signature"] = s.sign(params)
	params["api_key"] = s.apiKey

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	for k, v := range params {
		if err := form.WriteField(k, v); err != nil {
			return "", err
		}
	}
	part, err := form.CreateFormFile("file", in.FileName)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(in.Body); err != nil {
		return "", err
	}
	if err := form.Close(); err != nil {
		return "", err
	}

	uploadURL := fmt.Sprintf("%s/v1_1/%s/%s/upload", s.endpoint, s.cloudName, in.Resource)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("media upload: %w", err)
	}
	defer resp.Body.Close()

	var result cloudinaryUploadResult
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&result); err != nil {
		return "", fmt.Errorf("media upload: decode response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := result.Error.Message
		if msg == "" {
			msg = resp.Status
		}
		return "", fmt.Errorf("media upload failed: %s", msg)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("media upload: empty secure_url in response")
	}
	return result.SecureURL, nil
}

type cloudinaryDestroyResult struct {
	Result string `json:"result"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (s *cloudinaryStore) Destroy(ctx context.Context, publicID string, resource ResourceType) error {
	params := map[string]string{
		"public_id": publicID,
		"timestamp": strconv.FormatInt(time.Now().Unix(), 10),
	}
	params["signature"] = s.sign(params)
	params["api_key"] = s.apiKey

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	for k, v := range params {
		if err := form.WriteField(k, v); err != nil {
			return err
		}
	}
	if err := form.Close(); err != nil {
		return err
	}

	destroyURL := fmt.Sprintf("%s/v1_1/%s/%s/destroy", s.endpoint, s.cloudName, resource)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, destroyURL, &body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("media destroy: %w", err)
	}
	defer resp.Body.Close()

	var result cloudinaryDestroyResult
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&result); err != nil {
		return fmt.Errorf("media destroy: decode response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := result.Error.Message
		if msg == "" {
			msg = resp.Status
		}
		return fmt.Errorf("media destroy failed: %s", msg)
	}

	// "not found" means the object is already gone, which is the outcome
	// we wanted.
	switch result.Result {
	case "ok", "not found":
		return nil
	default:
		return fmt.Errorf("media destroy failed: %s", result.Result)
	}
}

// sign computes the Cloudinary API signature: sha1 over the sorted
// ampersand-joined params with the API secret appended.
func (s *cloudinaryStore) sign(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}

	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + s.apiSecret))
	return hex.EncodeToString(sum[:])
}
