// Package artifact stores schema sources and compiled descriptor sets.
//
// Sources always live on local disk (SourceStore) because protoc reads them
// from there. Compiled artifacts go through the Store interface, backed by a
// directory (FileStore, the default) or a MinIO bucket (MinioStore), and can
// be fronted by a Redis read cache (CachedStore) that is invalidated on every
// write.
//
// Artifacts are keyed by ArtifactName(source): "users.proto" is stored as
// "users.pb".
package artifact
