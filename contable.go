package contable

// Version is the release of the contable binary. It is overridden at build time with
// -ldflags "-X github.com/aretw0/contable.Version=...".
var Version = "0.1.0-dev"
