package sqlstore

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// ScanUser scans a single user from a database row
func ScanUser(scanner Scanner) (*User, error) {
	user := &User{}
	var createdAt string

	err := scanner.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.TimeZone,
		&user.ProjectOrder,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	if user.CreatedAt, err = ParseTimeFromDB(createdAt); err != nil {
		return nil, err
	}
	return user, nil
}

// ScanProject scans a single project from a database row
func ScanProject(scanner Scanner) (*Project, error) {
	project := &Project{}
	var createdAt string

	if err := scanner.Scan(&project.ID, &project.UserID, &project.Name, &createdAt); err != nil {
		return nil, err
	}

	var err error
	if project.CreatedAt, err = ParseTimeFromDB(createdAt); err != nil {
		return nil, err
	}
	return project, nil
}

// ScanProjects scans multiple projects from database rows
func ScanProjects(rows Rows) ([]*Project, error) {
	var projects []*Project
	for rows.Next() {
		project, err := ScanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return projects, nil
}

// ScanSession scans a single session from a database row
func ScanSession(scanner Scanner) (*Session, error) {
	session := &Session{}
	var startTime, endTime string

	err := scanner.Scan(
		&session.ID,
		&session.ProjectID,
		&session.ProjectName,
		&startTime,
		&endTime,
		&session.Breaks,
		&session.TimeZone,
	)
	if err != nil {
		return nil, err
	}

	if session.StartTime, err = ParseTimeFromDB(startTime); err != nil {
		return nil, err
	}
	if session.EndTime, err = ParseTimeFromDB(endTime); err != nil {
		return nil, err
	}
	return session, nil
}

// ScanSessions scans multiple sessions from database rows
func ScanSessions(rows Rows) ([]*Session, error) {
	var sessions []*Session
	for rows.Next() {
		session, err := ScanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}

// ScanLoginSession scans a single login session from a database row
func ScanLoginSession(scanner Scanner) (*LoginSession, error) {
	login := &LoginSession{}
	var createdAt, expiresAt string

	if err := scanner.Scan(&login.Token, &login.UserID, &createdAt, &expiresAt); err != nil {
		return nil, err
	}

	var err error
	if login.CreatedAt, err = ParseTimeFromDB(createdAt); err != nil {
		return nil, err
	}
	if login.ExpiresAt, err = ParseTimeFromDB(expiresAt); err != nil {
		return nil, err
	}
	return login, nil
}
