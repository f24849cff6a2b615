package api

// Backend endpoint map. Paths are relative to the configured API base URL.
const (
	EndpointRegister      = "/register"
	EndpointOAuth         = "/oauth/token"
	EndpointLogout        = "/logout"
	EndpointUser          = "/user"
	EndpointUpdateProfile = "/user/profile"

	EndpointChat          = "/chat"
	EndpointSend          = "/sendMsg"
	EndpointMarkRead      = "/message/read"
	EndpointDeleteMessage = "/message/delete"

	EndpointContacts       = "/contacts"
	EndpointAddContact     = "/contacts/add"
	EndpointRemoveContact  = "/contacts/remove"
	EndpointBlockContact   = "/contacts/block"
	EndpointUnblockContact = "/contacts/unblock"

	EndpointTranslate          = "/translate"
	EndpointTranslateHistory   = "/translate/history"
	EndpointSupportedLanguages = "/translate/languages"

	EndpointHome     = "/home"
	EndpointInfo     = "/info"
	EndpointFeedback = "/feedback"
	EndpointVersion  = "/version"

	EndpointUpdateCurrWin = "/updateCurrWin"

	EndpointUpload = "/upload"
	EndpointAvatar = "/upload/avatar"

	EndpointSettings       = "/settings"
	EndpointUpdateSettings = "/settings/update"

	EndpointBroadcastingAuth = "/broadcasting/auth"
)
