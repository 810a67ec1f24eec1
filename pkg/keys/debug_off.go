//go:build !vkbddebug

package keys

const debugBuild = false
