// Package meta holds build metadata.
package meta

// Version is the pggateway release version.
const Version = "v1.0.0"
