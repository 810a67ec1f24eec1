//go:build vkbddebug

package keys

const debugBuild = true
