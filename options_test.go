package mysqldialect

import "testing"

func TestParseTableOptions(t *testing.T) {
	tests := []struct {
		name string
		line string
		want map[string]string
	}{
		{
			"typical innodb",
			") ENGINE=InnoDB AUTO_INCREMENT=17 DEFAULT CHARSET=utf8 COLLATE=utf8_bin",
			map[string]string{
				"engine":          "InnoDB",
				"auto_increment":  "17",
				"default_charset": "utf8",
				"collate":         "utf8_bin",
			},
		},
		{
			"old type spelling",
			") TYPE=MyISAM",
			map[string]string{"type": "MyISAM"},
		},
		{
			"quoted string with escape",
			") ENGINE=InnoDB COMMENT='it''s a table'",
			map[string]string{"engine": "InnoDB", "comment": "it's a table"},
		},
		{
			"directories",
			") ENGINE=MyISAM DATA DIRECTORY='/var/data' INDEX DIRECTORY='/var/index'",
			map[string]string{
				"engine":          "MyISAM",
				"data_directory":  "/var/data",
				"index_directory": "/var/index",
			},
		},
		{
			"merge union",
			") ENGINE=MRG_MyISAM UNION=(t1,t2) INSERT_METHOD=LAST",
			map[string]string{
				"engine":        "MRG_MyISAM",
				"union":         "(t1,t2)",
				"insert_method": "LAST",
			},
		},
		{
			"row format and key block size",
			") ENGINE=InnoDB ROW_FORMAT=COMPRESSED KEY_BLOCK_SIZE=8",
			map[string]string{
				"engine":         "InnoDB",
				"row_format":     "COMPRESSED",
				"key_block_size": "8",
			},
		},
		{
			"spaces around equals",
			") ENGINE = InnoDB MAX_ROWS = 1000",
			map[string]string{"engine": "InnoDB", "max_rows": "1000"},
		},
		{
			"no options",
			") ",
			map[string]string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseTableOptions(tt.line)
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("options[%q] = %q, want %q", k, got[k], v)
				}
			}
			for k := range got {
				if _, ok := tt.want[k]; !ok {
					t.Errorf("unexpected option %q = %q", k, got[k])
				}
			}
		})
	}
}

func TestParseTableOptionsRaid(t *testing.T) {
	got := parseTableOptions(") ENGINE=MyISAM RAID_TYPE=STRIPED RAID_CHUNKS=2 RAID_CHUNKSIZE=256")
	want := "STRIPED RAID_CHUNKS=2 RAID_CHUNKSIZE=256"
	if got["raid_type"] != want {
		t.Errorf("raid_type = %q, want %q", got["raid_type"], want)
	}
	// RAID_TYPE must not shadow the bare TYPE option, and itself must not
	// be matched by the TYPE search.
	if _, ok := got["type"]; ok {
		t.Errorf("type = %q, want absent", got["type"])
	}
}

func TestParseTableOptionsTablespace(t *testing.T) {
	got := parseTableOptions(") ENGINE=InnoDB TABLESPACE=ts1 STORAGE DISK")
	if got["tablespace"] != "ts1 STORAGE DISK" {
		t.Errorf("tablespace = %q, want %q", got["tablespace"], "ts1 STORAGE DISK")
	}
}
