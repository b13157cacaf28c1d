// Package openai verifies OpenAI credentials before an ingestion run.
//
// The retrieval server performs all embedding and completion calls itself,
// so this package does not implement the engine interfaces. It exists to
// fail fast: a build over hundreds of transcripts should not discover a
// bad API key twenty minutes in. VerifyCredentials issues one cheap
// embedding request and reports whether the key works.
package openai
