package gateway

// Schema for the lookup store. The seedstore job applies it before
// loading; Store.Init applies it for in-memory test databases.
const Schema = `
CREATE TABLE IF NOT EXISTS states (
	id INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	normalized_name TEXT NOT NULL,
	priority_level INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS municipalities (
	id INTEGER PRIMARY KEY,
	state_id INTEGER NOT NULL REFERENCES states(id),
	name TEXT NOT NULL,
	normalized_name TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_municipalities_state ON municipalities(state_id, normalized_name);

CREATE TABLE IF NOT EXISTS locations (
	id INTEGER PRIMARY KEY,
	municipality_id INTEGER NOT NULL REFERENCES municipalities(id),
	name TEXT NOT NULL,
	normalized_name TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_locations_norm ON locations(normalized_name);

CREATE TABLE IF NOT EXISTS priority_locations (
	location_id INTEGER PRIMARY KEY REFERENCES locations(id),
	location_name TEXT NOT NULL,
	municipality_id INTEGER NOT NULL,
	municipality_name TEXT NOT NULL,
	state_id INTEGER NOT NULL,
	state_name TEXT NOT NULL,
	normalized_name TEXT NOT NULL,
	priority_level INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_priority_norm ON priority_locations(normalized_name);
CREATE INDEX IF NOT EXISTS idx_priority_state ON priority_locations(state_id);
`
