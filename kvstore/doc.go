// Package kvstore reads the JSON side-tables a LightRAG working directory
// persists alongside its vector index.
//
// The retrieval server owns these files and writes them during document
// processing; this package only ever reads them. Three tables matter here:
//
//   - kv_store_text_chunks.json: chunk id -> chunk content
//   - kv_store_full_docs.json: doc id -> original document content
//   - kv_store_doc_status.json: doc id -> processing status and file path
//
// An absent file is normal on a fresh working directory and loads as an
// empty table. The doc-status key set doubles as the processed set that
// makes ingestion runs idempotent.
package kvstore
