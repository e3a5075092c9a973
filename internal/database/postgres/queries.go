package postgres

const (
	sqlAdvisoryLock = `SELECT pg_advisory_xact_lock($1)`

	sqlInsertStudent = `
		INSERT INTO students (user_id, username, email, display_name, time_zone, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	sqlSelectStudent = `
		SELECT user_id, username, email, display_name, time_zone, created_at
		FROM students
		WHERE user_id = $1`

	sqlSelectStudentIDs = `SELECT user_id FROM students ORDER BY created_at, user_id`

	sqlCountTrees = `SELECT COUNT(*) FROM trees WHERE user_id = $1`

	sqlInsertTree = `
		INSERT INTO trees (tree_id, user_id, name, species, capsule, photo_refs, planted_at, initial_height, initial_diameter)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	sqlSelectTreesByUser = `
		SELECT tree_id, user_id, name, species, capsule, photo_refs, planted_at, initial_height, initial_diameter
		FROM trees
		WHERE user_id = $1
		ORDER BY planted_at, tree_id`

	sqlSelectTree = `
		SELECT tree_id, user_id, name, species, capsule, photo_refs, planted_at, initial_height, initial_diameter
		FROM trees
		WHERE user_id = $1 AND tree_id = $2`

	sqlSelectWaterings = `
		SELECT tree_id, watered_at
		FROM tree_waterings
		WHERE tree_id = ANY($1::uuid[])
		ORDER BY watering_id`

	sqlSelectMeasurements = `
		SELECT tree_id, measured_at, height, diameter, health_status, note, photo_ref
		FROM tree_measurements
		WHERE tree_id = ANY($1::uuid[])
		ORDER BY measurement_id`

	// Inserts only when the tree belongs to the user; zero rows means not found
	sqlInsertWatering = `
		INSERT INTO tree_waterings (tree_id, watered_at)
		SELECT tree_id, $3 FROM trees WHERE user_id = $1 AND tree_id = $2`

	sqlInsertMeasurement = `
		INSERT INTO tree_measurements (tree_id, measured_at, height, diameter, health_status, note, photo_ref)
		SELECT tree_id, $3, $4, $5, $6, $7, $8 FROM trees WHERE user_id = $1 AND tree_id = $2`

	sqlSelectEarnedBadges = `
		SELECT badge_id, category, earned_at
		FROM earned_badges
		WHERE user_id = $1`

	sqlInsertEarnedBadge = `
		INSERT INTO earned_badges (user_id, badge_id, category, earned_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, badge_id) DO NOTHING`
)
