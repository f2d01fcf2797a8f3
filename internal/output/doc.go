// Package output stores generated files through a Sink.
//
// FilesystemSink writes atomically below a root directory and skips files
// whose content is unchanged. MemorySink keeps files in memory for tests and
// dry runs.
package output
