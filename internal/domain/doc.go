// Package domain models the Hyderabad-area police jurisdiction directory.
//
// # Data Source
//
// The station registry is a provided read-only dataset covering three
// commissionerates (Hyderabad City, Cyberabad, Rachakonda) plus the Women PS
// and Bharosa Centre listings. It is compiled into the binary (stations.json)
// and can be overridden at startup with REGISTRY_PATH. This service never
// authors or mutates registry data; corrections happen upstream in the dataset.
//
// # Registry Conventions
//
// Contact numbers:
//
//	"phone" is the station landline in the 040-XXXXXXXX exchange format.
//	"mobile" is the direct officer line (10-digit). Every station carries at
//	least one of the two; most carry both.
//
// Keywords:
//
//	Lowercase locality aliases and landmarks ("hitech city", "kbr park",
//	"pillar 100") used for manual substring search. Keywords are not unique
//	across stations: dense localities legitimately appear under several.
//
// Coordinates:
//
//	Decimal degrees, WGS-84. Validated at load time to lat ∈ [-90,90] and
//	lng ∈ [-180,180]; resolvers treat valid coordinates as a precondition.
//
// Identifiers:
//
//	Station ids are opaque and stable ("hc-20", "cb-41", "rk-3"); the prefix
//	mirrors the commissionerate but carries no meaning beyond readability.
//	Uniqueness is enforced at load time.
//
// # Incident Memos
//
// DraftMemo renders a self-declared incident memorandum from caller-supplied
// details. Memos package situational data (GPS, timestamp, jurisdiction
// station) to help a citizen file an official report; they are explicitly not
// certified First Information Reports. Document ids derive from the package
// clock so tests with a fake clock get reproducible output.
package domain
