package domain

import (
	interfaces "stayreal/internal/domain/interfaces"
	types "stayreal/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	DeviceID             = types.DeviceID
	Region               = types.Region
	Credentials          = types.Credentials
	TokenPair            = types.TokenPair
	Preferences          = types.Preferences
	BalancesSettings     = types.BalancesSettings
	BalanceRecord        = types.BalanceRecord
	Moment               = types.Moment
	SignedRequestContext = types.SignedRequestContext
	Header               = types.Header
	Headers              = types.Headers
	TokenStatus          = types.TokenStatus
	ClientProfile        = types.ClientProfile
	PostLogSettings      = types.PostLogSettings
	SavedLocation        = types.SavedLocation
	SavedPost            = types.SavedPost
	PostCapture          = types.PostCapture
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	CredentialsStore   = interfaces.CredentialsStore
	PreferencesStore   = interfaces.PreferencesStore
	BalancesArchive    = interfaces.BalancesArchive
	PostLogStore       = interfaces.PostLogStore
	ClockAndLocale     = interfaces.ClockAndLocale
	Signer             = interfaces.Signer
	HeaderBuilder      = interfaces.HeaderBuilder
	AuthClient         = interfaces.AuthClient
	MomentClient       = interfaces.MomentClient
	ImageClient        = interfaces.ImageClient
	SessionService     = interfaces.SessionService
	PreferencesService = interfaces.PreferencesService
	MomentService      = interfaces.MomentService
	BalancesService    = interfaces.BalancesService
	BackupService      = interfaces.BackupService
	PostLogService     = interfaces.PostLogService
)

// Function re-exports.
var (
	DefaultClientProfile   = types.DefaultClientProfile
	DefaultPreferences     = types.DefaultPreferences
	DefaultPostLogSettings = types.DefaultPostLogSettings
)
