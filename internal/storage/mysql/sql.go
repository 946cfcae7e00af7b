package mysql

const hotelColumns = `id, user_id, name, city, country, description, type, price_per_night, facilities, image_urls, last_updated`

const insertHotelSQL = `
INSERT INTO hotels
  (` + hotelColumns + `)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

// Row lock scoped to the owner; a foreign or missing id yields no rows.
const lockHotelSQL = `
SELECT image_urls
FROM hotels
WHERE id = ? AND user_id = ?
FOR UPDATE
`

const updateHotelSQL = `
UPDATE hotels SET
  name            = ?,
  city            = ?,
  country         = ?,
  description     = ?,
  type            = ?,
  price_per_night = ?,
  facilities      = ?,
  image_urls      = ?,
  last_updated    = ?
WHERE id = ? AND user_id = ?
`

const setImageURLsSQL = `
UPDATE hotels SET image_urls = ?
WHERE id = ? AND user_id = ?
`

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

const getHotelSQL = `
SELECT ` + hotelColumns + `
FROM hotels
WHERE id = ? AND user_id = ?
`

// Newest first; served by idx_hotels_user.
const listHotelsSQL = `
SELECT ` + hotelColumns + `
FROM hotels
WHERE user_id = ?
ORDER BY last_updated DESC, id
`

const insertUserSQL = `
INSERT INTO users (id, email, password_hash, first_name, last_name, created_at)
VALUES (?, ?, ?, ?, ?, ?)
`

const userColumns = `id, email, password_hash, first_name, last_name, created_at`

const getUserByEmailSQL = `SELECT ` + userColumns + ` FROM users WHERE email = ?`

const getUserByIDSQL = `SELECT ` + userColumns + ` FROM users WHERE id = ?`
