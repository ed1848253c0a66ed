package config

import "io/fs"

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
	AppName     = "Go VCF"
	AppID       = "com.github.tartampluch.go-vcf"
	LogFileName = "app.log"
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
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion     = "version"
	FlagDebug       = "debug"
	FlagConfig      = "config"
	FlagLang        = "lang"
	FlagOutput      = "output"
	FlagMonth       = "month"
	FlagDescVersion = "Show application version and exit"
	FlagDescDebug   = "Enable debug logging to stdout"
	FlagDescConfig  = "Path to settings file"
	FlagDescLang    = "Language for user-facing messages (en, fr)"
	FlagDescOutput  = "Write output to file instead of stdout"
	FlagDescMonth   = "Month number (1-12)"

	MsgVersionOutput = "%s version %s (%s/%s)\n"
)

// -----------------------------------------------------------------------------
// CLI Commands & Output Formats
// -----------------------------------------------------------------------------

const (
	AppCommand = "go-vcf"
	AppUsage   = "Parse, validate, serialize, index, and export vCard 4.0 contact files"

	CmdValidate     = "validate"
	CmdShow         = "show"
	CmdWrite        = "write"
	CmdExport       = "export"
	CmdIndex        = "index"
	CmdList         = "list"
	CmdBorn         = "born"
	CmdDescValidate = "Parse a card file and report whether it is valid"
	CmdDescShow     = "Parse a card file and print a human-readable dump"
	CmdDescWrite    = "Parse a card file and re-serialize it"
	CmdDescExport   = "Generate an iCalendar feed from the indexed cards directory"
	CmdDescIndex    = "Scan the cards directory into the SQLite index"
	CmdDescList     = "List indexed contacts ordered by name"
	CmdDescBorn     = "List indexed contacts born in a given month"

	ArgFile     = "file"
	ErrMissFile = "a card file argument is required"

	FormatContactRow = "%-28s %-12s %-12s %s\n"
	FormatIndexDone  = "Indexed %d file(s), %d contact(s)\n"
	FormatTodayCount = "%d contact date(s) today\n"
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	DefaultLanguage     = "en"
	DefaultSettingsFile = "go-vcf.yaml"
	DefaultCardsDir     = "cards"
	DefaultDatabasePath = "go-vcf.db"
	UIDSalt             = "go-vcf-v1-" // Salt for deterministic UID generation
)

// SupportedLanguages defines the list of available message languages (ISO 639-1).
var SupportedLanguages = []string{"en", "fr"}

// -----------------------------------------------------------------------------
// Standards: vCard 4.0 Wire Format
// -----------------------------------------------------------------------------

const (
	// Bracketing and required lines
	TokenBegin   = "BEGIN:VCARD"
	TokenEnd     = "END:VCARD"
	TokenVersion = "VERSION:4.0"

	// Property names handled by the card builder
	PropVersion     = "VERSION"
	PropFN          = "FN"
	PropN           = "N"
	PropADR         = "ADR"
	PropBDAY        = "BDAY"
	PropAnniversary = "ANNIVERSARY"

	// Parameter tokens
	ParamValue     = "VALUE"
	ParamValueText = "text"

	// Version value required for acceptance (exact match)
	VersionValue = "4.0"

	// Wire syntax
	CRLF           = "\r\n"
	GroupSeparator = '.'
	NameSeparator  = ':'
	ParamSeparator = ';'
	ParamAssign    = '='
	DelimCompound  = ';'
	DelimDefault   = ','
	UTCSuffix      = " UTC"
	TimePrefix     = 'T'

	// Serialized field lengths enforced during validation
	DateLen = 8 // YYYYMMDD
	TimeLen = 6 // HHMMSS

	// PhoneExtMarker switches a value list to the compound delimiter when any
	// value contains it. Preserved verbatim from the original serializer; see
	// DESIGN.md before changing.
	PhoneExtMarker = "ext="
)

// -----------------------------------------------------------------------------
// Standards: iCalendar Export
// -----------------------------------------------------------------------------

const (
	ICalVersion   = "2.0"
	ICalProdid    = "-//Go VCF//Export//EN"
	ICalCalName   = "Contact Dates"
	ICalMethod    = "PUBLISH"
	ICalScale     = "GREGORIAN"
	ICalComponent = "VALARM"
	ICalAction    = "DISPLAY"
	ICalDomain    = "govcf"

	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDTStart     = "DTSTART"
	PropDTStamp     = "DTSTAMP"
	PropAction      = "ACTION"
	PropDescription = "DESCRIPTION"
	PropTrigger     = "TRIGGER"
	PropICalVersion = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"

	// StubVCalendar is the minimal valid iCalendar object used when no events
	// are found. Prevents clients from flagging the feed as invalid.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"

	// Event kinds and summary formats
	KindBirthday     = "Birthday"
	KindAnniversary  = "Anniversary"
	FormatSummary    = "%s: %s"
	FormatSummaryAge = "%s: %s (%d)"
	FallbackName     = "Unknown"
)

// -----------------------------------------------------------------------------
// Data Formats, Limits & File Extensions
// -----------------------------------------------------------------------------

const (
	// Date layouts
	DateFormatWire     = "20060102"   // vCard basic format, as validated
	DateFormatFullDash = "2006-01-02" // display and database format

	// Limits. ReadBufferSize caps a single physical line; MaxLogicalLineLen
	// caps an unfolded logical line, after which folding stops and the
	// remainder feeds the next read.
	ReadBufferSize    = 4096
	MaxLogicalLineLen = 4096

	// Export UID generation
	UIDHashLength   = 16
	FormatHashInput = "%s|%s|%s"
	FormatUID       = "%s-%d@%s"

	// File extensions accepted by the CLI collaborators
	ExtVCF   = ".vcf"
	ExtVCard = ".vcard"

	// Month bounds for the born query
	MinMonth = 1
	MaxMonth = 12
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrSettingsLoad   = "failed to load settings"
	ErrLogFile        = "failed to open log file"
	ErrCacheDir       = "could not determine user cache dir"
	ErrCreateDir      = "could not create app cache dir"
	ErrAppFailed      = "application failed unexpectedly"
	ErrICalEncode     = "failed to encode iCalendar data"
	ErrLocalesAccess  = "failed to access embedded locales"
	ErrLocaleLoad     = "failed to load locale file"
	ErrBadExtension   = "file must have a .vcf or .vcard extension"
	ErrMonthRange     = "month must be between 1 and 12"
	MsgLogWarning     = "Warning: %s at %s: %v\n"
)

// -----------------------------------------------------------------------------
// Error Kind Descriptions (one sentence per kind, fallback language)
// -----------------------------------------------------------------------------

const (
	DescOK              = "The card is valid."
	DescInvalidSource   = "The input source could not be read."
	DescInvalidCard     = "The card structure is invalid (missing BEGIN, END, FN or VERSION, or a duplicate restricted property)."
	DescInvalidProperty = "A property has an invalid name, parameter syntax, or value count."
	DescInvalidDateTime = "A date-time value is malformed or misplaced."
	DescExhausted       = "An input line exceeded the supported length."
	DescWriteFailure    = "The serialized card could not be written to its destination."
	DescUnknown         = "An unknown error occurred."
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyErrInvalidSource   = "err_invalid_source"
	TKeyErrInvalidCard     = "err_invalid_card"
	TKeyErrInvalidProperty = "err_invalid_property"
	TKeyErrInvalidDateTime = "err_invalid_datetime"
	TKeyErrExhausted       = "err_exhausted"
	TKeyErrWriteFailure    = "err_write_failure"
	TKeyMsgCardValid       = "msg_card_valid"
)

// -----------------------------------------------------------------------------
// Log Messages
// -----------------------------------------------------------------------------

const (
	MsgAppStarting   = "Starting application"
	MsgAppStop       = "Application stopped"
	MsgCardParsed    = "Card parsed"
	MsgCardValid     = "Card validated"
	MsgCardWritten   = "Card written"
	MsgExportDone    = "Calendar export successful"
	MsgIndexStarted  = "Indexing started"
	MsgIndexDone     = "Indexing finished"
	MsgSkippedFile   = "Skipping file"
	MsgSkippedDate   = "Skipping invalid date format"
	MsgDateToday     = "Contact date found today"
	MsgLocaleSkip    = "Skipping non-locale file"
	MsgLocaleBadName = "Skipping malformed locale filename"
	MsgLocaleLoaded  = "Locale loaded successfully"
	MsgTransMissing  = "Missing translation key"
	MsgFoldStopped   = "Folding stopped at capacity"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyFile      = "file"
	LogKeyKey       = "key"
	LogKeyValue     = "value"
	LogKeyName      = "name"
	LogKeyCount     = "count"
	LogKeyMonth     = "month"
	LogKeyLineLen   = "line_len"
	LogKeyProps     = "optional_properties"

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
	CompMain   = "main"
	CompParser = "parser"
	CompExport = "export"
	CompI18n   = "i18n"
)
