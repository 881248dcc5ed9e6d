package nativehost

// OfficialChromeExtensionID is the published Chrome extension ID. Empty
// until the extension ships on the Chrome Web Store.
const OfficialChromeExtensionID = ""

// OfficialFirefoxExtensionID is the published Firefox add-on ID.
const OfficialFirefoxExtensionID = "snoozetabs@mozilla.com"
