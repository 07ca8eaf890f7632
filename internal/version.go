package internal

// Version is the application version, set at release time.
const Version = "0.1.0"
