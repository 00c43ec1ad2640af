package version

// Version is the gcop-rs release the wrapper fetches and runs. Release
// builds override it with:
//
//	go build -ldflags "-X gcop/internal/version.Version=<x.y.z>"
//
// It is read once in cmd and passed explicitly into the installer; nothing
// below cmd consults it.
var Version = "0.4.2"
