// Package testutil provides shared test doubles for the video2csv packages.
//
// It contains three components:
//
// 1. Mock backend (mock_backend.go):
//   - MockBackend: testify mock of provider.Backend that records the waveform
//     path it was handed, so tests can check it is gone afterwards
//
// 2. Stub extractor (stub_extractor.go):
//   - StubExtractor: writes a small fake waveform instead of running ffmpeg
//
// 3. Fixtures (fixtures.go):
//   - Canonical backend payloads for the verbose segment, streaming result
//     and full text shapes
//   - WriteScript for shell script fakes of external binaries
//
// # Usage
//
//	backend := testutil.NewMockBackend("http", audio.FormatMP3)
//	backend.On("Transcribe", mock.Anything, mock.Anything).
//	    Return(provider.NewJSONPayload("http", []byte(testutil.VerbosePayload)), nil)
//
//	c := converter.NewConverter(testutil.NewStubExtractor(), backend, opts, nil, nil)
//	result, err := c.Convert(ctx, model.MediaInput{Reader: r, Filename: "clip.mp4"})
//	assert.NoFileExists(t, backend.LastWaveform())
package testutil
