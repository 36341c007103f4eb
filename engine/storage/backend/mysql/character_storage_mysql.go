package characterstoragemysql

import (
	"database/sql"
	"io"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/mxosim/reality/engine/entity"
	"github.com/mxosim/reality/engine/storage/storage_common"
	"github.com/pkg/errors"
)

const characterColumns = "`handle`, `firstName`, `lastName`, `background`, `x`, `y`, `z`, `rot`, " +
	"`healthC`, `healthM`, `innerStrC`, `innerStrM`, `level`, `profession`, `alignment`, `pvpflag`, " +
	"`exp`, `cash`, `district`, `adminFlags`"

// rsiColumns are the appearance attributes stored in `rsivalues`, in column order
var rsiColumns = []string{
	"Sex", "Body", "Hat", "Face", "Shirt", "Coat", "Pants", "Shoes", "Gloves", "Glasses",
	"Hair", "FacialDetail", "ShirtColor", "PantsColor", "CoatColor", "ShoeColor", "GlassesColor", "HairColor",
	"SkinTone", "Tattoo", "FacialDetailColor", "Leggings",
}

type mysqlCharacterStorage struct {
	db *sql.DB
}

// OpenMySQL opens mysql as character storage, url is a go-sql-driver DSN
func OpenMySQL(url string) (storagecommon.CharacterStorage, error) {
	db, err := sql.Open("mysql", url)
	if err != nil {
		return nil, err
	}

	err = db.Ping()
	if err != nil {
		db.Close()
		return nil, err
	}

	return &mysqlCharacterStorage{
		db: db,
	}, nil
}

func escapeId(id string) string {
	return "`" + id + "`"
}

func rsiColumnList() string {
	ids := make([]string, len(rsiColumns))
	for i, name := range rsiColumns {
		ids[i] = escapeId(strings.ToLower(name))
	}
	return strings.Join(ids, ", ")
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func (cs *mysqlCharacterStorage) Load(charID uint64) (*storagecommon.CharacterRecord, error) {
	rec := &storagecommon.CharacterRecord{CharID: charID}
	var handle, firstName, lastName, background sql.NullString
	err := cs.db.QueryRow("SELECT "+characterColumns+" FROM `characters` WHERE `charId` = ? LIMIT 1", charID).Scan(
		&handle, &firstName, &lastName, &background,
		&rec.X, &rec.Y, &rec.Z, &rec.Rot,
		&rec.HealthC, &rec.HealthM, &rec.InnerStrC, &rec.InnerStrM,
		&rec.Level, &rec.Profession, &rec.Alignment, &rec.PvPFlag,
		&rec.Exp, &rec.Cash, &rec.District, &rec.Admin,
	)
	if err == sql.ErrNoRows {
		return nil, errors.Wrapf(storagecommon.ErrCharacterNotFound, "character %d", charID)
	} else if err != nil {
		return nil, errors.Wrapf(err, "load character %d", charID)
	}
	rec.Handle, rec.FirstName, rec.LastName, rec.Background = handle.String, firstName.String, lastName.String, background.String

	rsi, err := cs.loadRSI(charID)
	if err != nil {
		return nil, err
	}
	rec.RSI = rsi
	return rec, nil
}

// loadRSI returns nil when the character has no stored appearance
func (cs *mysqlCharacterStorage) loadRSI(charID uint64) (entity.RSIValues, error) {
	values := make([]uint8, len(rsiColumns))
	dest := make([]interface{}, len(rsiColumns))
	for i := range values {
		dest[i] = &values[i]
	}
	err := cs.db.QueryRow("SELECT "+rsiColumnList()+" FROM `rsivalues` WHERE `charId` = ? LIMIT 1", charID).Scan(dest...)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, errors.Wrapf(err, "load rsi of character %d", charID)
	}

	rsi := entity.RSIValues{}
	female := values[0] != 0
	for i, name := range rsiColumns {
		if name == "Leggings" && !female {
			continue
		}
		rsi[name] = values[i]
	}
	if female {
		rsi["Sex"] = 1
	}
	return rsi, nil
}

func (cs *mysqlCharacterStorage) Create(rec *storagecommon.CharacterRecord) error {
	tx, err := cs.db.Begin()
	if err != nil {
		return err
	}
	_, err = tx.Exec("REPLACE INTO `characters` (`charId`, "+characterColumns+") VALUES ("+placeholders(21)+")",
		rec.CharID, rec.Handle, rec.FirstName, rec.LastName, rec.Background,
		rec.X, rec.Y, rec.Z, rec.Rot,
		rec.HealthC, rec.HealthM, rec.InnerStrC, rec.InnerStrM,
		rec.Level, rec.Profession, rec.Alignment, rec.PvPFlag,
		rec.Exp, rec.Cash, rec.District, rec.Admin,
	)
	if err == nil && len(rec.RSI) > 0 {
		args := []interface{}{rec.CharID}
		for _, name := range rsiColumns {
			args = append(args, rec.RSI[name])
		}
		_, err = tx.Exec("REPLACE INTO `rsivalues` (`charId`, "+rsiColumnList()+") VALUES ("+placeholders(len(args))+")", args...)
	}
	if err != nil {
		tx.Rollback()
		return errors.Wrapf(err, "create %s", rec)
	}
	return tx.Commit()
}

func (cs *mysqlCharacterStorage) exec(charID uint64, query string, args ...interface{}) error {
	res, err := cs.db.Exec(query, args...)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// also 0 when the stored values did not change, so check the character exists
		var one int
		if err := cs.db.QueryRow("SELECT 1 FROM `characters` WHERE `charId` = ?", charID).Scan(&one); err == sql.ErrNoRows {
			return errors.Wrapf(storagecommon.ErrCharacterNotFound, "character %d", charID)
		}
	}
	return nil
}

func (cs *mysqlCharacterStorage) SavePosition(charID uint64, pos entity.Location) error {
	return cs.exec(charID, "UPDATE `characters` SET `x` = ?, `y` = ?, `z` = ?, `rot` = ? WHERE `charId` = ?",
		pos.X, pos.Y, pos.Z, pos.Rot, charID)
}

func (cs *mysqlCharacterStorage) SaveBackground(charID uint64, background string) error {
	return cs.exec(charID, "UPDATE `characters` SET `background` = ? WHERE `charId` = ?", background, charID)
}

func (cs *mysqlCharacterStorage) SaveDistrict(charID uint64, district uint8) error {
	return cs.exec(charID, "UPDATE `characters` SET `district` = ? WHERE `charId` = ? LIMIT 1", district, charID)
}

func (cs *mysqlCharacterStorage) Close() {
	cs.db.Close()
}

func (cs *mysqlCharacterStorage) IsEOF(err error) bool {
	err = errors.Cause(err)
	return err == io.EOF || err == io.ErrUnexpectedEOF || err == mysql.ErrInvalidConn
}
