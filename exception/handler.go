package exception

import (
	"context"
	"net/http"
	"strings"

	"github.com/kbukum/errkit/errors"
	"github.com/kbukum/errkit/i18n"
	"github.com/kbukum/errkit/logger"
	"github.com/kbukum/errkit/reporting"
)

// MultipleDetail is the detail of a record grouping several field errors.
const MultipleDetail = "Multiple exceptions occurred. Please check list for details."

const uniqueSetMarker = "must make a unique set"

// Attr values that refer to the object as a whole rather than a field.
var nonFieldKeys = map[string]bool{
	"":                 true,
	"__all__":          true,
	"non_field_errors": true,
}

// RequestContext identifies the request an error was raised in.
type RequestContext struct {
	Method    string
	Path      string
	RequestID string
}

// RequestContextFrom builds a RequestContext from an HTTP request.
func RequestContextFrom(r *http.Request) RequestContext {
	if r == nil {
		return RequestContext{}
	}
	return RequestContext{
		Method:    r.Method,
		Path:      r.URL.Path,
		RequestID: r.Header.Get("X-Request-Id"),
	}
}

// Handler maps errors to records. It is immutable after New and safe for
// concurrent use.
type Handler struct {
	settings    Settings
	debug       bool
	catalog     *i18n.Catalog
	locale      string
	registry    *reporting.Registry
	reporter    reporting.Reporter
	classifiers []Classifier
	log         *logger.Logger
}

// Option configures a Handler.
type Option func(*Handler)

// WithLogger sets the logger.
func WithLogger(log *logger.Logger) Option {
	return func(h *Handler) { h.log = log }
}

// WithDebug marks the host as running in debug mode.
func WithDebug(debug bool) Option {
	return func(h *Handler) { h.debug = debug }
}

// WithCatalog sets the translation table used when localization is on.
func WithCatalog(c *i18n.Catalog) Option {
	return func(h *Handler) { h.catalog = c }
}

// WithLocale sets the locale of localized messages. Defaults to Farsi.
func WithLocale(locale string) Option {
	return func(h *Handler) { h.locale = locale }
}

// WithRegistry sets the registry ExceptionReporting is resolved against.
func WithRegistry(r *reporting.Registry) Option {
	return func(h *Handler) { h.registry = r }
}

// WithReporter sets the reporter directly, bypassing ExceptionReporting.
func WithReporter(r reporting.Reporter) Option {
	return func(h *Handler) { h.reporter = r }
}

// WithClassifier appends a classifier after the built-in ones.
func WithClassifier(c Classifier) Option {
	return func(h *Handler) { h.classifiers = append(h.classifiers, c) }
}

// New creates a Handler. It fails when the configured reporter is unknown or
// the translation table cannot be built.
func New(settings Settings, opts ...Option) (*Handler, error) {
	settings.ApplyDefaults()
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	h := &Handler{
		settings:    settings,
		locale:      i18n.LocaleFarsi,
		classifiers: DefaultClassifiers(),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.log == nil {
		h.log = logger.GetGlobalLogger()
	}
	h.log = h.log.WithComponent("exception")

	if h.reporter == nil {
		if h.registry == nil {
			h.registry = reporting.NewRegistry(h.log)
		}
		rep, err := h.registry.Lookup(settings.ExceptionReporting)
		if err != nil {
			return nil, err
		}
		h.reporter = rep
	}

	if settings.FarsiException && h.catalog == nil {
		cat, err := i18n.New()
		if err != nil {
			return nil, err
		}
		h.catalog = cat
	}
	return h, nil
}

// Settings returns the settings the handler was built with.
func (h *Handler) Settings() Settings {
	return h.settings
}

// PassThrough reports whether unrecognized errors should be left entirely to
// the host (debug mode without EnableInDebug).
func (h *Handler) PassThrough() bool {
	return h.debug && !h.settings.EnableInDebug
}

// Classify runs the classifier chain over err.
func (h *Handler) Classify(err error) (*errors.AppError, bool) {
	for _, classify := range h.classifiers {
		if appErr, ok := classify(err); ok {
			return appErr, true
		}
	}
	return nil, false
}

// Handle maps err to a Record. Unrecognized errors are returned unchanged
// with a nil record. A nil err yields (nil, nil).
func (h *Handler) Handle(ctx context.Context, err error, rc RequestContext) (*Record, error) {
	if err == nil {
		return nil, nil
	}

	appErr, ok := h.Classify(err)
	if !ok {
		return nil, err
	}

	rec := h.build(appErr)
	h.reporter.Report(ctx, err, reporting.Info{
		Method:    rc.Method,
		Path:      rc.Path,
		RequestID: rc.RequestID,
		Status:    rec.Status(),
		Type:      string(rec.Type),
		Code:      string(rec.Code),
	})
	return rec, nil
}

// Report sends an unrecognized error to the configured reporter.
func (h *Handler) Report(ctx context.Context, err error, rc RequestContext) {
	h.reporter.Report(ctx, err, reporting.Info{
		Method:    rc.Method,
		Path:      rc.Path,
		RequestID: rc.RequestID,
		Status:    http.StatusInternalServerError,
		Type:      string(errors.TypeServer),
		Code:      string(errors.ErrCodeGeneric),
	})
}

// GenericRecord is the record used for errors nothing recognized.
func (h *Handler) GenericRecord() *Record {
	return h.build(errors.Internal(nil))
}

func (h *Handler) build(appErr *errors.AppError) *Record {
	if h.settings.SupportMultipleExceptions && len(appErr.Fields) > 1 {
		return h.buildMultiple(appErr)
	}

	var field *errors.FieldError
	if len(appErr.Fields) > 0 {
		field = &appErr.Fields[0]
	}

	rec := &Record{
		Type:       recordType(appErr),
		Code:       mainCode(appErr, field),
		Detail:     detail(appErr, field),
		HTTPStatus: appErr.HTTPStatus,
		Details:    h.groupFields(appErr.Fields),
	}
	if field != nil {
		rec.Attr = h.attr(field.Path)
	}
	if rec.Attr == nil && strings.Contains(rec.Detail, uniqueSetMarker) {
		rec.Attr = uniqueSetAttr(rec.Detail)
	}

	h.localize(rec)
	return rec
}

func (h *Handler) buildMultiple(appErr *errors.AppError) *Record {
	rec := &Record{
		Type:       errors.TypeMultiple,
		Code:       errors.ErrCodeMultiple,
		Detail:     MultipleDetail,
		HTTPStatus: appErr.HTTPStatus,
		Details:    h.groupFields(appErr.Fields),
		List:       make([]Record, 0, len(appErr.Fields)),
	}
	for _, f := range appErr.Fields {
		single := *appErr
		single.Fields = []errors.FieldError{f}
		rec.List = append(rec.List, *h.build(&single))
	}
	h.localize(rec)
	return rec
}

func (h *Handler) localize(rec *Record) {
	if !h.settings.FarsiException || h.catalog == nil {
		return
	}
	rec.FaDetails = h.catalog.Translate(h.locale, string(rec.Code), rec.Detail)
	if rec.Attr != nil {
		segments := strings.Split(*rec.Attr, h.settings.NestedKeySeparator)
		fa := h.catalog.TranslateAttr(h.locale, segments[len(segments)-1])
		rec.FaAttr = &fa
	}
}

func (h *Handler) attr(path []string) *string {
	joined := strings.Join(path, h.settings.NestedKeySeparator)
	if nonFieldKeys[joined] {
		return nil
	}
	return &joined
}

func (h *Handler) groupFields(fields []errors.FieldError) map[string][]string {
	if len(fields) == 0 {
		return nil
	}
	grouped := make(map[string][]string, len(fields))
	for _, f := range fields {
		key := strings.Join(f.Path, h.settings.NestedKeySeparator)
		if nonFieldKeys[key] {
			key = "non_field_errors"
		}
		grouped[key] = append(grouped[key], f.Message)
	}
	return grouped
}

func recordType(appErr *errors.AppError) errors.ErrorType {
	if appErr.Type != "" {
		return appErr.Type
	}
	return errors.TypeForCode(appErr.Code)
}

func mainCode(appErr *errors.AppError, field *errors.FieldError) errors.ErrorCode {
	code := appErr.Code
	if field != nil && field.Code != "" {
		code = field.Code
	}
	switch code {
	case "":
		return errors.ErrCodeGeneric
	case errors.ErrCodeInvalid:
		return errors.ErrCodeInvalidInput
	}
	return code
}

func detail(appErr *errors.AppError, field *errors.FieldError) string {
	if field != nil && field.Message != "" {
		return field.Message
	}
	if appErr.Message != "" {
		return appErr.Message
	}
	return errors.DefaultDetail
}

// uniqueSetAttr extracts the first field from
// "The fields a, b must make a unique set."
func uniqueSetAttr(msg string) *string {
	words := strings.Split(msg, " ")
	if len(words) < 3 {
		return nil
	}
	name := strings.TrimRight(words[2], ",")
	if name == "" {
		return nil
	}
	return &name
}
