package proto

// Well-known bus names used by the splash screen plugin.
const (
	// DSME (device state management entity) lifecycle signals on the system bus.
	DSMESignalInterface = "com.nokia.dsme.signal"
	DSMESignalPath      = "/com/nokia/dsme/signal"
	DSMEShutdownInd     = "shutdown_ind"

	// Bus management interface.
	DBusInterface        = "org.freedesktop.DBus"
	DBusPath             = "/org/freedesktop/DBus"
	DBusNameOwnerChanged = "NameOwnerChanged"

	// AppMgrName is owned by the desktop shell once it is up.
	AppMgrName = "com.nokia.HildonDesktop.AppMgr"

	// systemui request surface.
	SystemUIService   = "com.nokia.system_ui"
	SystemUIPath      = "/com/nokia/system_ui/request"
	SystemUIInterface = "com.nokia.system_ui.request"

	SplashOpenReq  = "splashscreen_open"
	SplashCloseReq = "splashscreen_close"
)

// ShutdownIndMatch is the match rule for the DSME shutdown indication.
func ShutdownIndMatch() string {
	return "type='signal',interface='" + DSMESignalInterface +
		"',path='" + DSMESignalPath +
		"',member='" + DSMEShutdownInd + "'"
}

// AppMgrMatch is the match rule for ownership changes of AppMgrName.
func AppMgrMatch() string {
	return "type='signal',interface='" + DBusInterface +
		"',path='" + DBusPath +
		"',member='" + DBusNameOwnerChanged +
		"',arg0='" + AppMgrName + "'"
}
