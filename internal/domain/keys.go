package domain

// KeyPrefix namespaces every key this service writes to the key-value store.
const KeyPrefix = "jobmatch:"

// EventsChannel is the pub/sub channel for application lifecycle events.
const EventsChannel = KeyPrefix + "events"
