// Package speech defines the Speaker capability the playback scheduler
// drives, plus the concrete text-to-speech engines: espeak-ng, the macOS
// `say` command, and the OpenAI speech API.
package speech
