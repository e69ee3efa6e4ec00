package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName        = "GCal Birthdays"
	AppID          = "com.github.pwalczyk.gcal-birthdays"
	KeyringService = "com.github.pwalczyk.gcal-birthdays"
	KeyringToken   = "oauth-token"

	DataFileName     = "data.json"
	SettingsFileName = "settings.yaml"
	LogFileName      = "app.log"
	EnvFileName      = ".env"

	LocalhostBindAddr = "127.0.0.1"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700
)

// -----------------------------------------------------------------------------
// OAuth / Credentials
// -----------------------------------------------------------------------------

const (
	EnvClientID     = "GCAL_BIRTHDAYS_CLIENT_ID"
	EnvClientSecret = "GCAL_BIRTHDAYS_CLIENT_SECRET"

	// OAuthRedirectURL is the out-of-band redirect used by the `auth` command:
	// the user pastes the authorization code back into the terminal.
	OAuthRedirectURL = "urn:ietf:wg:oauth:2.0:oob"
)

// -----------------------------------------------------------------------------
// Calendar Export Defaults & Business Logic
// -----------------------------------------------------------------------------

const (
	DefaultCalendarName    = "Birthdays"
	DefaultTimeZone        = "Europe/Warsaw"
	DefaultColorID         = "6"
	DefaultReminderMinutes = 720
	DefaultLanguage        = "en"
	DefaultServerPort      = "8383"

	// EventPageSize is the maximum page size accepted by the Calendar API
	// events.list endpoint.
	EventPageSize = 2500

	// ProgressOverheadSteps covers authorization, calendar resolution, and
	// the existing-event read; the remaining steps are one per record.
	ProgressOverheadSteps = 3

	ReminderMethodPopup = "popup"

	MinBirthYear = 1900
)

// -----------------------------------------------------------------------------
// Data Formats, Limits & File Extensions
// -----------------------------------------------------------------------------

const (
	// Date layouts
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatFullT     = "2006-01-02T15:04:05Z"

	// ChronoKeyLength selects the trailing "MM-DD" of a stored date string,
	// the year-agnostic chronological sort key.
	ChronoKeyLength = 5

	// Limits
	MinPort = 1
	MaxPort = 65535

	// File Extensions
	ExtVCF   = ".vcf"
	ExtVCard = ".vcard"
	ExtICS   = ".ics"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	// iCal Properties
	ICalVersion   = "2.0"
	ICalProdid    = "-//GCal Birthdays//Engine//EN"
	ICalCalName   = "Birthdays"
	ICalMethod    = "PUBLISH"
	ICalScale     = "GREGORIAN"
	ICalComponent = "VALARM"
	ICalAction    = "DISPLAY"
	ICalDomain    = "gcalbirthdays"

	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDTStart     = "DTSTART"
	PropDTStamp     = "DTSTAMP"
	PropRefresh     = "REFRESH-INTERVAL"
	PropAction      = "ACTION"
	PropDescription = "DESCRIPTION"
	PropTrigger     = "TRIGGER"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"

	VCardBDAY = "BDAY"
	VCardFN   = "FN"
	VCardN    = "N"

	DefaultICalRefresh = 1 * time.Hour

	// UID Generation
	UIDSalt         = "gcal-birthdays-v1-"
	UIDHashLength   = 16
	FormatHashInput = "%s|%s|%s"
	FormatUID       = "%s-%d@%s"

	// StubVCalendar is the minimal valid iCalendar object used when the
	// record list is empty, so feed consumers never see an invalid body.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"
)

// -----------------------------------------------------------------------------
// Remote Event Payload
// -----------------------------------------------------------------------------

const (
	// FallbackSummary formats the remote event title from a name and the
	// birth year. The identity key is derived from this string, so the
	// template participates in duplicate detection.
	FallbackSummary = "Birthday: %s %s"

	RRulePrefix = "RRULE:"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout        = 30 * time.Second
	ShutdownTimeout    = 5 * time.Second
	ServerReadTimeout  = 10 * time.Second
	ServerWriteTimeout = 30 * time.Second
	ServerIdleTimeout  = 60 * time.Second
	AllowedMethods     = "GET, HEAD"
	RouteRoot          = "/"
	AddrSeparator      = ":"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Log Rotation
// -----------------------------------------------------------------------------

const (
	LogMaxSizeMB  = 5
	LogMaxBackups = 2
	LogMaxAgeDays = 28
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrNameEmpty        = "validation error: name is empty after trimming"
	ErrDateParse        = "unable to parse date"
	ErrDateTooOld       = "validation error: birth year precedes 1900"
	ErrDateInFuture     = "validation error: birth date is in the future"
	ErrIndexRange       = "index out of range"
	ErrDataLoad         = "failed to load data file"
	ErrDataSave         = "failed to save data file"
	ErrSettingsLoad     = "failed to load settings file"
	ErrDataDir          = "could not determine user data dir"
	ErrCacheDir         = "could not determine user cache dir"
	ErrCreateDir        = "could not create app dir"
	ErrClientConfig     = "client configuration missing"
	ErrTokenMissing     = "no stored token; run the auth command first"
	ErrTokenDecode      = "stored token is not valid JSON"
	ErrTokenRefresh     = "token refresh failed"
	ErrTokenExchange    = "authorization code exchange failed"
	ErrKeyringStore     = "failed to store token in keyring"
	ErrServiceInit      = "failed to create calendar service"
	ErrListCalendars    = "failed to list calendars"
	ErrCreateCalendar   = "failed to create calendar"
	ErrPatchCalendar    = "failed to patch calendar defaults"
	ErrListEvents       = "failed to list events"
	ErrCreateEvent      = "failed to create event"
	ErrICalEncode       = "failed to encode iCalendar data"
	ErrVCardParse       = "failed to parse vCard stream"
	ErrServerStartup    = "server startup failed"
	ErrServerShutdown   = "server shutdown failed"
	ErrPortRequired     = "server port is required"
	ErrWriteResp        = "failed to write response body"
	ErrLocalesAccess    = "failed to access embedded locales"
	ErrLocaleLoad       = "failed to load locale file"
	ErrAppFailed        = "application failed unexpectedly"
	ErrLogFile          = "failed to open log file"
	ErrSyncNotConfirmed = "export not confirmed"
)

// -----------------------------------------------------------------------------
// Log Messages
// -----------------------------------------------------------------------------

const (
	MsgAppStarting       = "Starting application"
	MsgAppStop           = "Application stopped gracefully"
	MsgSyncStarted       = "Calendar export started..."
	MsgSyncDone          = "Calendar export finished"
	MsgSyncCancelled     = "Calendar export cancelled by user"
	MsgSessionState      = "Session state changed"
	MsgCalendarFound     = "Target calendar found"
	MsgCalendarCreated   = "Target calendar created"
	MsgDefaultsPatched   = "Calendar default reminders applied"
	MsgDirectoryLoaded   = "Existing event directory loaded"
	MsgEventCreated      = "Event created"
	MsgEventSkipped      = "Event already present, skipped"
	MsgRecordSkipped     = "Skipping record with unparseable date"
	MsgSkippedCard       = "Skipping malformed vCard"
	MsgSkippedDate       = "Skipping vCard without a full birth date"
	MsgAgesRecalculated  = "Ages recalculated and persisted"
	MsgServerListen      = "HTTP feed listening"
	MsgServerStop        = "Shutting down HTTP feed..."
	MsgFeedUpdated       = "Feed cache updated"
	MsgLocaleSkip        = "Skipping non-locale file"
	MsgLocaleBadName     = "Skipping malformed locale filename"
	MsgLocaleLoaded      = "Locale loaded successfully"
	MsgTransMissing      = "Missing translation key"
	MsgTokenStored       = "Token stored in keyring"
	MsgTokenRefreshed    = "Token refreshed"
	MsgImportDone        = "vCard import finished"
	MsgExportWritten     = "iCalendar file written"
	MsgVersionOutput     = "%s version %s (%s/%s)\n"
	MsgLogWarning        = "Warning: %s at %s: %v\n"
	MsgConfirmDeclined   = "Export declined by user"
	MsgDotenvNotFound    = "No .env file found, relying on environment"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyCalendar  = "calendar"
	LogKeyCalID     = "calendar_id"
	LogKeyPages     = "pages"
	LogKeyCount     = "count"
	LogKeyCreated   = "created"
	LogKeySkipped   = "skipped"
	LogKeyImported  = "imported"
	LogKeyName      = "name"
	LogKeyDOB       = "date_of_birth"
	LogKeySummary   = "summary"
	LogKeyState     = "state"
	LogKeyStep      = "step"
	LogKeyTotal     = "total"
	LogKeyValue     = "value"
	LogKeyDuration  = "duration_ms"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompMain      = "main"
	CompStore     = "store"
	CompAuth      = "auth"
	CompGCal      = "gcal"
	CompSync      = "sync"
	CompDirectory = "directory"
	CompReconcile = "reconcile"
	CompExport    = "export"
	CompImport    = "import"
	CompServer    = "server"
	CompI18n      = "i18n"
)
