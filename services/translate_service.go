package services

import (
	"log/slog"
	"net/url"

	"github.com/abadojack/whatlanggo"

	"chat-client/api"
)

type TranslationRecord struct {
	Source      string `json:"source"`
	Translation string `json:"translation"`
	From        string `json:"from"`
	To          string `json:"to"`
}

type ITranslateService interface {
	Translate(text, target string) (string, bool)
	History() ([]TranslationRecord, bool)
	SupportedLanguages() ([]string, bool)
}

// TranslateService wraps the backend translator. The source language is
// detected locally so the backend never has to guess.
type TranslateService struct {
	api api.Caller
	log *slog.Logger
}

func NewTranslateService(caller api.Caller, log *slog.Logger) *TranslateService {
	return &TranslateService{api: caller, log: log}
}

// Translate sends the text with a detected source-language hint and returns
// the translation.
func (s *TranslateService) Translate(text, target string) (string, bool) {
	form := url.Values{
		"text":   {text},
		"target": {target},
	}
	info := whatlanggo.Detect(text)
	if info.IsReliable() {
		form.Set("source", info.Lang.Iso6391())
	}

	resp := s.api.Post(api.EndpointTranslate, form)
	if !resp.OK() {
		return "", false
	}

	var body struct {
		Translation string `json:"translation"`
	}
	if err := resp.Decode(&body); err != nil || body.Translation == "" {
		s.log.Error("Unreadable translation response", "err", err)
		return "", false
	}
	return body.Translation, true
}

func (s *TranslateService) History() ([]TranslationRecord, bool) {
	resp := s.api.Get(api.EndpointTranslateHistory, nil)
	if !resp.OK() {
		return nil, false
	}
	var records []TranslationRecord
	if err := resp.Decode(&records); err != nil {
		s.log.Error("Unreadable translation history", "err", err)
		return nil, false
	}
	return records, true
}

func (s *TranslateService) SupportedLanguages() ([]string, bool) {
	resp := s.api.Get(api.EndpointSupportedLanguages, nil)
	if !resp.OK() {
		return nil, false
	}
	var languages []string
	if err := resp.Decode(&languages); err != nil {
		s.log.Error("Unreadable language list", "err", err)
		return nil, false
	}
	return languages, true
}
