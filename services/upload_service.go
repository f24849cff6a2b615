package services

import (
	"io"
	"log/slog"

	"chat-client/api"
)

type IUploadService interface {
	File(filename string, content io.Reader) (string, bool)
	Avatar(filename string, content io.Reader) (string, bool)
}

type UploadService struct {
	api api.Caller
	log *slog.Logger
}

func NewUploadService(caller api.Caller, log *slog.Logger) *UploadService {
	return &UploadService{api: caller, log: log}
}

// File uploads an attachment and returns its served URL.
func (s *UploadService) File(filename string, content io.Reader) (string, bool) {
	return s.upload(api.EndpointUpload, filename, content)
}

// Avatar uploads a new profile picture and returns its served URL.
func (s *UploadService) Avatar(filename string, content io.Reader) (string, bool) {
	return s.upload(api.EndpointAvatar, filename, content)
}

func (s *UploadService) upload(endpoint, filename string, content io.Reader) (string, bool) {
	resp := s.api.Upload(endpoint, "file", filename, content, nil)
	if !resp.OK() {
		return "", false
	}
	var body struct {
		URL string `json:"url"`
	}
	if err := resp.Decode(&body); err != nil {
		s.log.Error("Unreadable upload response", "err", err)
		return "", false
	}
	return body.URL, true
}
