package domain

// KeyPrefix namespaces every key the service writes to a shared store.
const KeyPrefix = "wfsquery:"

// MaxTermLength is the longest accepted search term, in bytes.
const MaxTermLength = 1024
