package postgres

// SRID4326 - WGS84 coordinate system
const SRID4326 = 4326

// poiColumns - колонки POI в порядке маппинга poiRow.
// location отдаётся как ST_X/ST_Y, чтобы координаты вернулись без потерь точности.
const poiColumns = `
	id, name, description, latitude, longitude,
	ST_X(location) AS location_lng,
	ST_Y(location) AS location_lat,
	tags, rating, created_at, updated_at`
